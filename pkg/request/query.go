package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// encodePairs encodes the map to "key=value" pairs joined by "&", in the insertion order.
// Both key and value are percent-encoded, a space is encoded as "%20" or as "+" in the form mode.
func encodePairs(m *orderedmap.OrderedMap, form bool) string {
	var out strings.Builder
	forEach(m, func(key, value string) {
		if out.Len() > 0 {
			out.WriteString("&")
		}
		out.WriteString(escape(key, form))
		out.WriteString("=")
		out.WriteString(escape(value, form))
	})
	return out.String()
}

func escape(v string, form bool) string {
	v = url.QueryEscape(v)
	if !form {
		v = strings.ReplaceAll(v, "+", "%20")
	}
	return v
}

// buildURL appends the query to the URL.
// An existing query in the URL is kept, an empty query map leaves the URL unchanged.
func buildURL(rawURL string, query *orderedmap.OrderedMap) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf(`%w: url is missing`, ErrInvalidArgument)
	}
	if _, err := url.Parse(rawURL); err != nil {
		return "", fmt.Errorf(`%w: url "%s" is not valid: %w`, ErrInvalidArgument, rawURL, err)
	}

	queryStr := encodePairs(query, false)
	if queryStr == "" {
		return rawURL, nil
	}

	// Keep fragment at the end
	fragment := ""
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		rawURL, fragment = rawURL[:i], rawURL[i:]
	}

	switch {
	case !strings.Contains(rawURL, "?"):
		rawURL += "?"
	case !strings.HasSuffix(rawURL, "?") && !strings.HasSuffix(rawURL, "&"):
		rawURL += "&"
	}
	return rawURL + queryStr + fragment, nil
}
