package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	"github.com/twileloop/go-jetapi/pkg/auth"
)

func TestBasic(t *testing.T) {
	t.Parallel()

	name, value := auth.Basic{Username: "username", Password: "password", EncodeAsBase64: true}.Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Basic dXNlcm5hbWU6cGFzc3dvcmQ=", value)

	name, value = auth.Basic{Username: "username", Password: "password"}.Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Basic username:password", value)

	// Empty credentials are accepted as they are
	_, value = auth.Basic{}.Header()
	assert.Equal(t, "Basic :", value)
}

func TestAPIKey(t *testing.T) {
	t.Parallel()

	name, value := auth.APIKey{HeaderName: "Api-Key", Key: "XYZ"}.Header()
	assert.Equal(t, "Api-Key", name)
	assert.Equal(t, "XYZ", value)

	name, value = auth.NewAPIKey("XYZ").Header()
	assert.Equal(t, "Api-Key", name)
	assert.Equal(t, "XYZ", value)

	name, _ = auth.APIKey{Key: "XYZ"}.Header()
	assert.Equal(t, "Api-Key", name)

	name, value = auth.APIKey{HeaderName: "X-StorageApi-Token", Key: "secret"}.Header()
	assert.Equal(t, "X-StorageApi-Token", name)
	assert.Equal(t, "secret", value)
}

func TestBearer(t *testing.T) {
	t.Parallel()

	name, value := auth.Bearer{Token: "my-token"}.Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer my-token", value)

	_, value = auth.Bearer{}.Header()
	assert.Equal(t, "Bearer ", value)
}

func TestOAuth2(t *testing.T) {
	t.Parallel()

	name, value := auth.OAuth2{Token: &oauth2.Token{AccessToken: "abc"}}.Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer abc", value)

	_, value = auth.OAuth2{Token: &oauth2.Token{AccessToken: "abc", TokenType: "mac"}}.Header()
	assert.Equal(t, "MAC abc", value)
}
