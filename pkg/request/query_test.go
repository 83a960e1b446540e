package request

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	query := orderedmap.New()
	query.Set("fname", "Sangeeth")
	query.Set("lname", "Nandakumar")
	empty := orderedmap.New()
	special := orderedmap.New()
	special.Set("a b", "c&d=e+f/ü")

	cases := []struct {
		url      string
		query    *orderedmap.OrderedMap
		expected string
	}{
		{"https://example.com/path", query, "https://example.com/path?fname=Sangeeth&lname=Nandakumar"},
		{"https://example.com/path", empty, "https://example.com/path"},
		{"https://example.com/path", nil, "https://example.com/path"},
		{"https://example.com/path?x=1", query, "https://example.com/path?x=1&fname=Sangeeth&lname=Nandakumar"},
		{"https://example.com/path?", query, "https://example.com/path?fname=Sangeeth&lname=Nandakumar"},
		{"https://example.com/path#frag", query, "https://example.com/path?fname=Sangeeth&lname=Nandakumar#frag"},
		{"https://example.com", special, "https://example.com?a%20b=c%26d%3De%2Bf%2F%C3%BC"},
	}

	for _, c := range cases {
		actual, err := buildURL(c.url, c.query)
		assert.NoError(t, err)
		assert.Equal(t, c.expected, actual)
	}

	_, err := buildURL("", query)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = buildURL("https://example.com/%zz", query)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEncodePairs_Form(t *testing.T) {
	t.Parallel()

	fields := orderedmap.New()
	fields.Set("name", "John Doe")
	fields.Set("city", "New York")
	assert.Equal(t, "name=John+Doe&city=New+York", encodePairs(fields, true))
	assert.Equal(t, "name=John%20Doe&city=New%20York", encodePairs(fields, false))
}
