package request

import (
	"fmt"
	"net/http"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/twileloop/go-jetapi/pkg/auth"
	"github.com/twileloop/go-jetapi/pkg/client"
)

// Request is an immutable HTTP request builder, T is the type of the response payload.
//
// Each method returns a modified copy, the receiver is never modified.
// A configuration error is recorded in the returned copy and returned by the Execute method.
type Request[T any] struct {
	sender                 Sender
	preserveOnMethodChange bool
	method                 string
	header                 *orderedmap.OrderedMap
	query                  *orderedmap.OrderedMap
	authHeader             *authHeader
	body                   *Body
	interceptor            *Interceptor
	onSuccess              func(*Response[T])
	onFailure              func(*Response[T])
	statusCaptures         []StatusCapture
	fetchAs                ContentType
	fetchByHeader          bool
	exceptionHandler       func(error)
	err                    error
}

type authHeader struct {
	name  string
	value string
}

type config struct {
	sender                 Sender
	preserveOnMethodChange bool
}

// Option for the NewRequest function.
type Option func(c *config)

// WithSender sets the transport, by default each request gets a new client.Client.
func WithSender(sender Sender) Option {
	return func(c *config) {
		c.sender = sender
	}
}

// PreserveOnMethodChange keeps the configuration when the method is changed,
// by default Get, Post, Put, Patch and Delete methods start a fresh request.
func PreserveOnMethodChange() Option {
	return func(c *config) {
		c.preserveOnMethodChange = true
	}
}

// NewRequest creates an immutable request builder with the GET method.
func NewRequest[T any](opts ...Option) Request[T] {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.sender == nil {
		cfg.sender = client.New()
	}
	return Request[T]{
		sender:                 cfg.sender,
		preserveOnMethodChange: cfg.preserveOnMethodChange,
		method:                 http.MethodGet,
		header:                 orderedmap.New(),
		query:                  orderedmap.New(),
		fetchAs:                JSON,
	}
}

// Method returns the HTTP method.
func (r Request[T]) Method() string {
	return r.method
}

// Header returns a copy of the request headers, including the authentication header.
func (r Request[T]) Header() http.Header {
	out := make(http.Header)
	forEach(r.header, func(key, value string) {
		out.Set(key, value)
	})
	if r.authHeader != nil {
		out.Set(r.authHeader.name, r.authHeader.value)
	}
	return out
}

// QueryString returns the encoded query parameters, without "?".
func (r Request[T]) QueryString() string {
	return encodePairs(r.query, false)
}

// Body returns the request body, if any.
func (r Request[T]) Body() *Body {
	return r.body
}

// Err returns the first configuration error, if any.
func (r Request[T]) Err() error {
	return r.err
}

// Get starts a GET request.
func (r Request[T]) Get() Request[T] {
	return r.withMethod(http.MethodGet)
}

// Post starts a POST request.
func (r Request[T]) Post() Request[T] {
	return r.withMethod(http.MethodPost)
}

// Put starts a PUT request.
func (r Request[T]) Put() Request[T] {
	return r.withMethod(http.MethodPut)
}

// Patch starts a PATCH request.
func (r Request[T]) Patch() Request[T] {
	return r.withMethod(http.MethodPatch)
}

// Delete starts a DELETE request.
func (r Request[T]) Delete() Request[T] {
	return r.withMethod(http.MethodDelete)
}

// WithHeaders sets the header fields, the last value of a duplicate key wins.
// The key and the value are required, otherwise ErrInvalidArgument is recorded.
func (r Request[T]) WithHeaders(params ...Param) Request[T] {
	if r.err != nil {
		return r
	}
	header, err := mergeParams(r.header, params, canonicalHeaderKey)
	if err != nil {
		return r.withErr(fmt.Errorf(`cannot set header: %w`, err))
	}
	r.header = header
	return r
}

// WithQueries sets the query parameters, the last value of a duplicate key wins.
// The key and the value are required, otherwise ErrInvalidArgument is recorded.
func (r Request[T]) WithQueries(params ...Param) Request[T] {
	if r.err != nil {
		return r
	}
	query, err := mergeParams(r.query, params, nil)
	if err != nil {
		return r.withErr(fmt.Errorf(`cannot set query: %w`, err))
	}
	r.query = query
	return r
}

// WithCookies sets the Cookie header to the cookies joined by "; ".
// A previous Cookie header is replaced. Without params the request is not modified.
func (r Request[T]) WithCookies(params ...Param) Request[T] {
	if r.err != nil || len(params) == 0 {
		return r
	}
	value, err := cookieHeader(params)
	if err != nil {
		return r.withErr(fmt.Errorf(`cannot set cookies: %w`, err))
	}
	r.header = cloneMap(r.header)
	r.header.Set("Cookie", value)
	return r
}

// WithFormData sets the "application/x-www-form-urlencoded" body, a previous body is replaced.
func (r Request[T]) WithFormData(params ...Param) Request[T] {
	if r.err != nil {
		return r
	}
	fields, err := mergeParams(nil, params, nil)
	if err != nil {
		return r.withErr(fmt.Errorf(`cannot set form data: %w`, err))
	}
	r.body = newFormBody(fields)
	return r
}

// WithBody sets the request body, a previous body is replaced.
func (r Request[T]) WithBody(body *Body) Request[T] {
	if r.err != nil {
		return r
	}
	if body == nil {
		return r.withErr(fmt.Errorf(`cannot set body: %w: body is missing`, ErrInvalidArgument))
	}
	if body.mediaType == "" {
		if _, err := body.ContentType.MIME(); err != nil {
			return r.withErr(fmt.Errorf(`cannot set body: %w`, err))
		}
	}
	r.body = body
	return r
}

// WithContent is a shortcut for WithBody(NewBody(contentType, content)).
func (r Request[T]) WithContent(contentType ContentType, content any) Request[T] {
	if r.err != nil {
		return r
	}
	body, err := NewBody(contentType, content)
	if err != nil {
		return r.withErr(fmt.Errorf(`cannot set body: %w`, err))
	}
	return r.WithBody(body)
}

// WithAuthentication sets the authentication header.
// Only one authentication is active, a previous one is replaced.
func (r Request[T]) WithAuthentication(authentication auth.Authentication) Request[T] {
	if r.err != nil {
		return r
	}
	if isNil(authentication) {
		return r.withErr(fmt.Errorf(`cannot set authentication: %w: descriptor is missing`, ErrInvalidArgument))
	}
	name, value := authentication.Header()
	r.authHeader = &authHeader{name: canonicalHeaderKey(name), value: value}
	return r
}

// WithInterceptor sets the interceptor, a previous one is replaced. Nil removes the interceptor.
func (r Request[T]) WithInterceptor(interceptor *Interceptor) Request[T] {
	r.interceptor = interceptor
	return r
}

// WithCaptures sets callbacks invoked with the response.
// The onSuccess is invoked for a 2xx status code, the onFailure for other status codes.
// Nil callback is ignored.
func (r Request[T]) WithCaptures(onSuccess, onFailure func(response *Response[T])) Request[T] {
	r.onSuccess = onSuccess
	r.onFailure = onFailure
	return r
}

// WithStatusCaptures adds callbacks invoked for a specific status code.
// Only the first matching capture is invoked, before the response body is read.
func (r Request[T]) WithStatusCaptures(captures ...StatusCapture) Request[T] {
	r.statusCaptures = append(append([]StatusCapture{}, r.statusCaptures...), captures...)
	return r
}

// FetchAs sets how the response body is decoded to the payload.
// JSON and XML are decoded, for other content types the payload is left empty. Default is JSON.
func (r Request[T]) FetchAs(contentType ContentType) Request[T] {
	if r.err != nil {
		return r
	}
	if _, err := contentType.MIME(); err != nil {
		return r.withErr(fmt.Errorf(`cannot set fetch type: %w`, err))
	}
	r.fetchAs = contentType
	r.fetchByHeader = false
	return r
}

// FetchByContentType decodes the payload according to the Content-Type header of the response,
// see ContentTypeFromHeader. If the header is missing or not recognized, the FetchAs type is used.
func (r Request[T]) FetchByContentType() Request[T] {
	r.fetchByHeader = true
	return r
}

// HandleExceptions sets a handler invoked with any error that occurred during the execution.
// The error is also available in the Response.Err field.
func (r Request[T]) HandleExceptions(handler func(err error)) Request[T] {
	r.exceptionHandler = handler
	return r
}

func (r Request[T]) withMethod(method string) Request[T] {
	if !r.preserveOnMethodChange {
		r = NewRequest[T](WithSender(r.sender))
	}
	r.method = method
	return r
}

func (r Request[T]) withErr(err error) Request[T] {
	r.err = newDefinitionError(err)
	return r
}
