// Package decode unwraps a response body according to its Content-Encoding header.
package decode

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// decoded closes the decoder, if it is closable, and then the original body.
type decoded struct {
	io.Reader
	body io.Closer
}

func (v decoded) Close() error {
	if c, ok := v.Reader.(io.Closer); ok {
		if err := c.Close(); err != nil {
			_ = v.body.Close()
			return err
		}
	}
	return v.body.Close()
}

// Decode returns a reader of the decoded body.
// The second return value is true, if the body has been decoded.
func Decode(body io.ReadCloser, contentEncoding string) (io.ReadCloser, bool, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip":
		if v, err := gzip.NewReader(body); err == nil {
			return decoded{Reader: v, body: body}, true, nil
		} else {
			return nil, false, fmt.Errorf("cannot decode gzip: %w", err)
		}
	case "br":
		return decoded{Reader: brotli.NewReader(body), body: body}, true, nil
	default:
		return body, false, nil
	}
}
