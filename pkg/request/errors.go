package request

import "errors"

var (
	// ErrInvalidArgument is returned if a required parameter, descriptor or body is missing.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedContentType is returned if a content type tag is not recognized.
	ErrUnsupportedContentType = errors.New("unsupported content type")
	// ErrTransport wraps errors from the Sender, for example a network error or a timeout.
	ErrTransport = errors.New("transport failure")
	// ErrDeserialization wraps errors from the response payload decoding.
	ErrDeserialization = errors.New("deserialization failure")
	// ErrInterceptor wraps errors returned by an Interceptor hook.
	ErrInterceptor = errors.New("interceptor failure")
	// ErrPanic wraps a value recovered from a panic in a hook or callback.
	ErrPanic = errors.New("panic")
	// ErrRequestFailed is returned by ExecuteOrErr if the response status code is not successful.
	ErrRequestFailed = errors.New("request failed")
)
