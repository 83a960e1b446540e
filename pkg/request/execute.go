package request

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Execute sends the request to the URL and maps the response to the Response envelope.
//
// The returned error is not nil only if the request definition is not valid, see Err method.
// Other errors, including an invalid URL, never escape, the execution always results in an envelope:
//   - 2xx status code: IsSuccess is true, the payload is decoded, see FetchAs.
//   - other status code: IsSuccess is false, the body is available, the payload is not decoded.
//   - an error, for example a network error: IsSuccess is false and the Err field contains the cause.
func (r Request[T]) Execute(ctx context.Context, url string) (*Response[T], error) {
	if r.err != nil {
		return nil, r.err
	}

	out, err := r.execute(ctx, url)
	if err != nil {
		var statusCode int
		var status string
		if out != nil {
			statusCode, status = out.StatusCode, out.Status
		}
		if r.exceptionHandler != nil {
			r.exceptionHandler(err)
		}
		return newErrorResponse[T](statusCode, status, err), nil
	}
	return out, nil
}

// ExecuteOrErr sends the request and returns an error if the definition is not valid,
// the execution failed or the response status code is not successful.
func (r Request[T]) ExecuteOrErr(ctx context.Context, url string) error {
	res, err := r.Execute(ctx, url)
	switch {
	case err != nil:
		return err
	case res.Err != nil:
		return res.Err
	case !res.IsSuccess:
		return fmt.Errorf(`%w: %s "%s" returned status %d`, ErrRequestFailed, r.method, url, res.StatusCode)
	default:
		return nil
	}
}

// Bind returns the request bound to the URL, so it can be sent by a RunGroup or a WaitGroup.
func (r Request[T]) Bind(url string) Sendable {
	if v, ok := r.err.(DefinitionError); ok {
		return v
	}
	return boundRequest[T]{request: r, url: url}
}

type boundRequest[T any] struct {
	request Request[T]
	url     string
}

func (v boundRequest[T]) SendOrErr(ctx context.Context) error {
	return v.request.ExecuteOrErr(ctx, v.url)
}

// execute returns an error from any step, the returned response may contain the received status.
func (r Request[T]) execute(ctx context.Context, url string) (out *Response[T], err error) {
	// Hooks and callbacks are user code, convert panic to an error
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf(`%w: %v`, ErrPanic, p)
		}
	}()

	if err := r.interceptor.init(ctx); err != nil {
		return nil, err
	}

	target, err := buildURL(url, r.query)
	if err != nil {
		return nil, err
	}

	req, err := r.newHTTPRequest(ctx, target)
	if err != nil {
		return nil, err
	}

	if err := r.interceptor.requesting(ctx, req); err != nil {
		return nil, err
	}

	res, err := r.sender.Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf(`%w: %w`, ErrTransport, err)
	}
	defer res.Body.Close()
	received := &Response[T]{StatusCode: res.StatusCode, Status: res.Status}

	if err := r.interceptor.responseReceived(ctx); err != nil {
		return received, err
	}

	dispatchStatus(r.statusCaptures, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return received, fmt.Errorf(`%w: cannot read response body: %w`, ErrTransport, err)
	}

	// Non-success status code, the payload is not decoded
	if !isSuccessStatus(res.StatusCode) {
		out = newFailureResponse[T](res.StatusCode, res.Status, body)
		if r.onFailure != nil {
			r.onFailure(out)
		}
		return out, nil
	}

	out = newSuccessResponse[T](res.StatusCode, res.Status, body)
	for key, values := range res.Header {
		out.Response.ResponseHeaders[key] = strings.Join(values, ",")
	}
	out.Response.ResponseCookies = ParseCookies(res.Header.Values("Set-Cookie"))

	// The success callback is invoked for each 2xx status code, even if the payload cannot be decoded
	decodeErr := r.decode(res.Header.Get("Content-Type"), body, &out.Response.Data)
	if r.onSuccess != nil {
		r.onSuccess(out)
	}
	if decodeErr != nil {
		return received, decodeErr
	}
	return out, nil
}

func (r Request[T]) newHTTPRequest(ctx context.Context, target string) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		body = r.body.reader()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf(`cannot create request %s "%s": %w`, r.method, target, err)
	}

	forEach(r.header, func(key, value string) {
		req.Header.Set(key, value)
	})
	if r.authHeader != nil {
		req.Header.Set(r.authHeader.name, r.authHeader.value)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", r.body.Header())
	}
	return req, nil
}

// decode sets the target only if the whole payload is decoded.
func (r Request[T]) decode(contentTypeHeader string, body []byte, target *T) error {
	if len(body) == 0 {
		return nil
	}

	fetchAs := r.fetchAs
	if r.fetchByHeader {
		if v, err := ContentTypeFromHeader(contentTypeHeader); err == nil {
			fetchAs = v
		}
	}

	var data T
	switch fetchAs {
	case JSON:
		if err := json.Unmarshal(body, &data); err != nil {
			return fmt.Errorf(`%w: cannot decode JSON payload: %w`, ErrDeserialization, err)
		}
	case XML:
		if err := xml.Unmarshal(body, &data); err != nil {
			return fmt.Errorf(`%w: cannot decode XML payload: %w`, ErrDeserialization, err)
		}
	default:
		// The payload is left empty, the body is available as Content and Binary.
		return nil
	}
	*target = data
	return nil
}

func isSuccessStatus(statusCode int) bool {
	return statusCode > 199 && statusCode < 300
}

func wrapInterceptorErr(hook string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(`%w: %s: %w`, ErrInterceptor, hook, err)
}
