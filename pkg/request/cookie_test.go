package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twileloop/go-jetapi/pkg/request"
)

func TestParseCookies(t *testing.T) {
	t.Parallel()

	// Attributes are not cookies
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, request.ParseCookies([]string{"a=1; Path=/; HttpOnly", "b=2"}))

	// Attributes are case-insensitive
	assert.Equal(t, map[string]string{"id": "abc"}, request.ParseCookies([]string{
		"id=abc; path=/; DOMAIN=example.com; Expires=Wed, 21 Oct 2015 07:28:00 GMT; max-age=10; SameSite=Lax; Secure; Partitioned; Priority=High",
	}))

	// The last value wins
	assert.Equal(t, map[string]string{"a": "2"}, request.ParseCookies([]string{"a=1", "a=2"}))

	// Value is split on the first "="
	assert.Equal(t, map[string]string{"token": "abc=="}, request.ParseCookies([]string{"token=abc=="}))

	// Empty name or value is skipped
	assert.Equal(t, map[string]string{}, request.ParseCookies([]string{"=1; a=; ;  "}))

	// No header
	assert.Equal(t, map[string]string{}, request.ParseCookies(nil))
}
