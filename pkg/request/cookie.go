package request

import (
	"strings"
)

// cookieAttributes are names of Set-Cookie attributes, they are not cookies.
var cookieAttributes = map[string]bool{ //nolint:gochecknoglobals
	"path":        true,
	"domain":      true,
	"expires":     true,
	"max-age":     true,
	"samesite":    true,
	"secure":      true,
	"httponly":    true,
	"partitioned": true,
	"priority":    true,
}

// ParseCookies parses values of Set-Cookie headers to a name/value map.
//
// Each value is split to segments by ";" and each segment to name and value by the first "=".
// Segments with an empty name or value are skipped, same as the cookie attributes, for example "Path=/".
// The last occurrence of a name wins.
func ParseCookies(setCookieValues []string) map[string]string {
	out := make(map[string]string)
	for _, line := range setCookieValues {
		for _, segment := range strings.Split(line, ";") {
			name, value, found := strings.Cut(strings.TrimSpace(segment), "=")
			if !found {
				continue
			}
			name, value = strings.TrimSpace(name), strings.TrimSpace(value)
			if name == "" || value == "" || cookieAttributes[strings.ToLower(name)] {
				continue
			}
			out[name] = value
		}
	}
	return out
}

// cookieHeader joins the cookies to a single Cookie header value.
func cookieHeader(cookies []Param) (string, error) {
	m, err := mergeParams(nil, cookies, nil)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(cookies))
	forEach(m, func(name, value string) {
		parts = append(parts, name+"="+value)
	})
	return strings.Join(parts, "; "), nil
}
