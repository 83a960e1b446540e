package request

import (
	"context"
	"net/http"
)

// Interceptor is a set of optional hooks invoked at fixed points of the request execution.
// A nil hook is a no-op. An error returned by a hook stops the execution, see Request.HandleExceptions.
type Interceptor struct {
	// OnInit is called first, before the request is built.
	OnInit func(ctx context.Context) error
	// OnRequesting is called before the request is sent, the request can be modified.
	OnRequesting func(ctx context.Context, request *http.Request) error
	// OnResponseReceived is called when the response headers are received, before the body is read.
	OnResponseReceived func(ctx context.Context) error
}

func (i *Interceptor) init(ctx context.Context) error {
	if i == nil || i.OnInit == nil {
		return nil
	}
	return wrapInterceptorErr("OnInit", i.OnInit(ctx))
}

func (i *Interceptor) requesting(ctx context.Context, request *http.Request) error {
	if i == nil || i.OnRequesting == nil {
		return nil
	}
	return wrapInterceptorErr("OnRequesting", i.OnRequesting(ctx, request))
}

func (i *Interceptor) responseReceived(ctx context.Context) error {
	if i == nil || i.OnResponseReceived == nil {
		return nil
	}
	return wrapInterceptorErr("OnResponseReceived", i.OnResponseReceived(ctx))
}
