package request

import (
	"context"
	"net/http"
)

// Sender represents an HTTP client, the client.Client is a default implementation using the standard net/http package.
type Sender interface {
	// Send method sends the request and returns the response.
	// The caller is responsible for closing the response body.
	Send(ctx context.Context, request *http.Request) (*http.Response, error)
}

// Sendable is a request bound to a URL, see Request.Bind.
// It is used by the RunGroup and WaitGroup.
type Sendable interface {
	SendOrErr(ctx context.Context) error
}

// DefinitionError is an error that occurred during the request configuration.
// It is recorded by the builder and returned when you try to execute the request.
// This simplifies usage, the error is checked only once, in one place.
type DefinitionError struct {
	error
}

func newDefinitionError(err error) DefinitionError {
	return DefinitionError{error: err}
}

// SendOrErr implements the Sendable interface, the error is returned without sending anything.
func (v DefinitionError) SendOrErr(_ context.Context) error {
	return v
}

func (v DefinitionError) Unwrap() error {
	return v.error
}
