package request

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Body pairs a content type with already encoded content, see NewBody.
type Body struct {
	// ContentType tag of the body.
	ContentType ContentType
	// Content is the encoded body.
	Content string
	// mediaType overrides the MIME of the ContentType, it is used by the form body.
	mediaType string
}

// NewBody creates a Body from the content.
//
// A string or []byte content is used as it is.
// Other values are encoded according to the content type:
// JSON by the json-iterator, XML by the encoding/xml and the others by the fmt.Sprint.
func NewBody(contentType ContentType, content any) (*Body, error) {
	if isNil(content) {
		return nil, fmt.Errorf(`%w: body content is missing`, ErrInvalidArgument)
	}
	if _, err := contentType.MIME(); err != nil {
		return nil, err
	}

	b := &Body{ContentType: contentType}
	switch v := content.(type) {
	case string:
		b.Content = v
	case []byte:
		b.Content = string(v)
	default:
		switch contentType {
		case JSON:
			out, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf(`cannot encode JSON body: %w`, err)
			}
			b.Content = string(out)
		case XML:
			out, err := xml.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf(`cannot encode XML body: %w`, err)
			}
			b.Content = xml.Header + string(out)
		default:
			b.Content = fmt.Sprint(v)
		}
	}
	return b, nil
}

// Header returns value of the Content-Type header, with the UTF-8 charset.
func (b *Body) Header() string {
	if b.mediaType != "" {
		return b.mediaType
	}
	mediaType, err := b.ContentType.MIME()
	if err != nil {
		// Body created by the NewBody function is always valid
		panic(err)
	}
	return mediaType + "; charset=" + charsetUTF8
}

func newFormBody(fields *orderedmap.OrderedMap) *Body {
	return &Body{ContentType: Text, Content: encodePairs(fields, true), mediaType: formURLEncoded}
}

func (b *Body) reader() *strings.Reader {
	return strings.NewReader(b.Content)
}
