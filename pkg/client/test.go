package client

import (
	"context"
	"net/http"
	"os"

	"github.com/jarcoal/httpmock"

	"github.com/twileloop/go-jetapi/pkg/client/trace"
)

var testTransport = DefaultTransport()

// NewTestClient creates the Client for tests.
//
// If the TEST_HTTP_CLIENT_VERBOSE environment variable is set to "true",
// then all HTTP requests and responses are dumped to stdout.
//
// Credential headers are masked, but bodies are dumped as they are, do not use it in production.
func NewTestClient() Client {
	return New().
		WithTransport(testTransport).
		WithTrace(func(ctx context.Context, req *http.Request) (context.Context, *trace.ClientTrace) {
			if os.Getenv("TEST_HTTP_CLIENT_VERBOSE") == "true" {
				return trace.DumpTracer(os.Stdout)(ctx, req)
			}
			return ctx, nil
		})
}

// NewMockedClient creates the Client with mocked HTTP transport.
func NewMockedClient() (Client, *httpmock.MockTransport) {
	mockTransport := httpmock.NewMockTransport()
	return NewTestClient().WithTransport(mockTransport), mockTransport
}
