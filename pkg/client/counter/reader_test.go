package counter_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twileloop/go-jetapi/pkg/client/counter"
)

// body is a response body stub with optional read and close errors.
type body struct {
	io.Reader
	readErr  error
	closeErr error
	closed   int
}

func (b *body) Read(p []byte) (int, error) {
	n, err := b.Reader.Read(p)
	if err == nil && b.readErr != nil {
		err = b.readErr
	}
	return n, err
}

func (b *body) Close() error {
	b.closed++
	return b.closeErr
}

type processed struct {
	calls int
	bytes int64
	err   error
}

func (p *processed) onClose(bytes int64, err error) {
	p.calls++
	p.bytes = bytes
	p.err = err
}

func TestReadCloser_ReportedError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("connection reset")
	closeErr := errors.New("close failed")

	cases := map[string]struct {
		readErr, closeErr error
		reported          error
	}{
		"success":            {},
		"close error":        {closeErr: closeErr, reported: closeErr},
		"read error":         {readErr: readErr, reported: readErr},
		"read wins on close": {readErr: readErr, closeErr: closeErr, reported: readErr},
		"eof is not error":   {readErr: io.EOF},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var p processed
			b := &body{Reader: strings.NewReader(`{"id":1}`), readErr: tc.readErr, closeErr: tc.closeErr}
			r := counter.NewReadCloser(b, p.onClose)

			_, _ = io.ReadAll(r)
			assert.Equal(t, int64(8), r.Bytes())
			assert.Equal(t, 0, p.calls, "callback is invoked on close")

			assert.Equal(t, tc.closeErr, r.Close())
			assert.Equal(t, 1, p.calls)
			assert.Equal(t, int64(8), p.bytes)
			assert.Equal(t, tc.reported, p.err)
		})
	}
}

func TestReadCloser_PartialRead(t *testing.T) {
	t.Parallel()

	// Body closed before EOF, only the read bytes are reported
	var p processed
	r := counter.NewReadCloser(&body{Reader: strings.NewReader("0123456789")}, p.onClose)
	buf := make([]byte, 4)
	n, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, r.Close())
	assert.Equal(t, processed{calls: 1, bytes: 4}, p)
}

func TestReadCloser_CloseTwice(t *testing.T) {
	t.Parallel()

	// The request is processed once, the wrapped body is closed on each call
	var p processed
	b := &body{Reader: strings.NewReader("abc")}
	r := counter.NewReadCloser(b, p.onClose)
	_, err := io.ReadAll(r)
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 2, b.closed)
	assert.Equal(t, processed{calls: 1, bytes: 3}, p)
}

func TestReadCloser_NoCallback(t *testing.T) {
	t.Parallel()

	r := counter.NewReadCloser(&body{Reader: strings.NewReader("")}, nil)
	_, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, int64(0), r.Bytes())
	assert.NoError(t, r.Close())
}
