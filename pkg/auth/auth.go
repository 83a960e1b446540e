// Package auth contains authentication descriptors.
//
// A descriptor is a small value that knows how to render itself into a single HTTP header.
// It performs no I/O, see the request.Request.WithAuthentication method.
package auth

import (
	"encoding/base64"

	"golang.org/x/oauth2"
)

// AuthorizationHeader is the header used by all schemes except APIKey.
const AuthorizationHeader = "Authorization"

// DefaultAPIKeyHeader is the header name used by NewAPIKey.
const DefaultAPIKeyHeader = "Api-Key"

// Authentication renders a credential to one header field.
type Authentication interface {
	// Header returns the header name and its value.
	Header() (name, value string)
}

// Basic authentication, "Authorization: Basic <credentials>".
type Basic struct {
	Username string
	Password string
	// EncodeAsBase64 encodes the "user:pass" pair, otherwise it is sent as it is.
	EncodeAsBase64 bool
}

// APIKey sends the key directly in the HeaderName header.
type APIKey struct {
	HeaderName string
	Key        string
}

// Bearer token authentication, "Authorization: Bearer <token>".
type Bearer struct {
	Token string
}

// OAuth2 renders an OAuth2 access token, the scheme is taken from the token type.
type OAuth2 struct {
	Token *oauth2.Token
}

// NewAPIKey creates APIKey with the DefaultAPIKeyHeader.
func NewAPIKey(key string) APIKey {
	return APIKey{HeaderName: DefaultAPIKeyHeader, Key: key}
}

func (v Basic) Header() (string, string) {
	credentials := v.Username + ":" + v.Password
	if v.EncodeAsBase64 {
		credentials = base64.StdEncoding.EncodeToString([]byte(credentials))
	}
	return AuthorizationHeader, "Basic " + credentials
}

func (v APIKey) Header() (string, string) {
	name := v.HeaderName
	if name == "" {
		name = DefaultAPIKeyHeader
	}
	return name, v.Key
}

func (v Bearer) Header() (string, string) {
	return AuthorizationHeader, "Bearer " + v.Token
}

func (v OAuth2) Header() (string, string) {
	if v.Token == nil {
		return AuthorizationHeader, "Bearer "
	}
	return AuthorizationHeader, v.Token.Type() + " " + v.Token.AccessToken
}
