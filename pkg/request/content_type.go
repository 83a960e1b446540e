package request

import (
	"fmt"
	"mime"
	"strings"
)

// ContentType of a request body or a response payload.
type ContentType int

const (
	JSON ContentType = iota
	XML
	Text
	HTML
	JavaScript
)

const (
	charsetUTF8    = "utf-8"
	formURLEncoded = "application/x-www-form-urlencoded"
)

// MIME returns the media type of the content type, for example "application/json".
func (v ContentType) MIME() (string, error) {
	switch v {
	case JSON:
		return "application/json", nil
	case XML:
		return "application/xml", nil
	case Text:
		return "text/plain", nil
	case HTML:
		return "text/html", nil
	case JavaScript:
		return "application/javascript", nil
	default:
		return "", fmt.Errorf(`%w: "%d"`, ErrUnsupportedContentType, int(v))
	}
}

func (v ContentType) String() string {
	switch v {
	case JSON:
		return "JSON"
	case XML:
		return "XML"
	case Text:
		return "Text"
	case HTML:
		return "HTML"
	case JavaScript:
		return "JavaScript"
	default:
		return fmt.Sprintf("ContentType(%d)", int(v))
	}
}

// ContentTypeFromHeader maps a Content-Type header value to the ContentType.
// Structured syntax suffixes are recognized, for example "application/problem+json" is JSON.
func ContentTypeFromHeader(value string) (ContentType, error) {
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return 0, fmt.Errorf(`%w: "%s": %w`, ErrUnsupportedContentType, value, err)
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return JSON, nil
	case mediaType == "application/xml" || mediaType == "text/xml" || strings.HasSuffix(mediaType, "+xml"):
		return XML, nil
	case mediaType == "text/plain":
		return Text, nil
	case mediaType == "text/html":
		return HTML, nil
	case mediaType == "application/javascript" || mediaType == "text/javascript":
		return JavaScript, nil
	default:
		return 0, fmt.Errorf(`%w: "%s"`, ErrUnsupportedContentType, mediaType)
	}
}
