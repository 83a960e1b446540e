// Package client provides the transport for requests built by the request package.
//
// Client is a default implementation of the request.Sender interface.
// Client is based on the standard net/http package and contains
// Content-Encoding decoding, common headers and tracing/telemetry support.
// It is easy to implement your custom transport, by implementing the request.Sender interface.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	otelMetric "go.opentelemetry.io/otel/metric"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/twileloop/go-jetapi/pkg/client/counter"
	"github.com/twileloop/go-jetapi/pkg/client/decode"
	"github.com/twileloop/go-jetapi/pkg/client/trace"
	"github.com/twileloop/go-jetapi/pkg/client/trace/otel"
)

// UserAgent is the default value of the User-Agent header.
const UserAgent = "go-jetapi"

// Client is a default and configurable implementation of the request.Sender interface by Go native http.Client.
// Client is immutable, each With* method returns a modified clone.
type Client struct {
	transport      http.RoundTripper
	baseURL        *url.URL
	header         http.Header
	timeout        time.Duration
	traceFactories []trace.Factory
}

// New creates new HTTP Client.
func New() Client {
	c := Client{transport: DefaultTransport(), header: make(http.Header)}
	c.header.Set("User-Agent", UserAgent)
	c.header.Set("Accept-Encoding", "gzip, br")
	return c
}

// WithBaseURL returns a clone of the Client with base url set.
// Relative request URLs are resolved against the base URL.
func (c Client) WithBaseURL(baseURLStr string) Client {
	baseURL, err := url.Parse(baseURLStr)
	if err != nil {
		panic(fmt.Errorf(`base url "%s" is not valid: %w`, baseURLStr, err))
	}
	c.baseURL = baseURL
	return c
}

// WithUserAgent returns a clone of the Client with user agent set.
func (c Client) WithUserAgent(v string) Client {
	return c.WithHeader("User-Agent", v)
}

// WithHeader returns a clone of the Client with common header set.
// A header set by the request has priority over the common header.
func (c Client) WithHeader(key, value string) Client {
	c.header = c.header.Clone()
	c.header.Set(key, value)
	return c
}

// WithHeaders returns a clone of the Client with common headers set.
func (c Client) WithHeaders(headers map[string]string) Client {
	c.header = c.header.Clone()
	for k, v := range headers {
		c.header.Set(k, v)
	}
	return c
}

// WithTransport returns a clone of the Client with a HTTP transport set.
func (c Client) WithTransport(transport http.RoundTripper) Client {
	if transport == nil {
		panic(fmt.Errorf("transport cannot be nil"))
	}
	c.transport = transport
	return c
}

// WithTimeout returns a clone of the Client with the timeout of one request, including reading the body.
// Zero means no timeout, the request context can still be used to cancel the request.
func (c Client) WithTimeout(timeout time.Duration) Client {
	c.timeout = timeout
	return c
}

// WithTrace returns a clone of the Client with a trace factory added.
// Hooks of all factories are called, in the order in which the factories were added.
func (c Client) WithTrace(fn trace.Factory) Client {
	c.traceFactories = append(append([]trace.Factory{}, c.traceFactories...), fn)
	return c
}

// WithTelemetry returns a clone of the Client with OpenTelemetry tracing and metrics added.
func (c Client) WithTelemetry(tracerProvider otelTrace.TracerProvider, meterProvider otelMetric.MeterProvider, opts ...otel.Option) Client {
	return c.WithTrace(otel.NewTrace(tracerProvider, meterProvider, opts...))
}

// Send sends the HTTP request and returns the HTTP response, it implements the request.Sender interface.
// The response body is decoded according to the Content-Encoding header.
// The caller must close the response body.
func (c Client) Send(ctx context.Context, req *http.Request) (*http.Response, error) {
	// Method cannot be called on an empty value
	if c.transport == nil {
		panic(fmt.Errorf("client value is not initialized"))
	}

	// Convert to absolute url
	if c.baseURL != nil && !req.URL.IsAbs() {
		req.URL = c.baseURL.ResolveReference(req.URL)
		req.Host = ""
	}

	// Global headers, request headers have priority
	for k, values := range c.header {
		if _, found := req.Header[k]; found {
			continue
		}
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	// Init trace, hooks are called in the order in which factories were registered
	var tc *trace.ClientTrace
	for _, factory := range c.traceFactories {
		var t *trace.ClientTrace
		ctx, t = factory(ctx, req)
		if t != nil {
			t.Compose(tc)
			tc = t
		}
	}
	if tc != nil {
		ctx = httptrace.WithClientTrace(ctx, &tc.ClientTrace)
	}
	req = req.WithContext(ctx)

	// Setup native client
	nativeClient := http.Client{
		Timeout:   c.timeout,
		Transport: roundTripper{trace: tc, wrapped: c.transport}, // wrapped transport for trace
	}

	// Send request
	startedAt := time.Now()
	res, err := nativeClient.Do(req)
	if err != nil {
		err = handleSendError(startedAt, c.timeout, req, err)
		if tc != nil && tc.RequestProcessed != nil {
			tc.RequestProcessed(nil, 0, err)
		}
		return nil, err
	}

	// Process content encoding
	body, decoded, err := decode.Decode(res.Body, res.Header.Get("Content-Encoding"))
	if err != nil {
		_ = res.Body.Close()
		err = fmt.Errorf(`cannot process request %s "%s": %w`, req.Method, req.URL.String(), err)
		if tc != nil && tc.RequestProcessed != nil {
			tc.RequestProcessed(res, 0, err)
		}
		return nil, err
	}
	if decoded {
		res.Header.Del("Content-Encoding")
		res.Header.Del("Content-Length")
		res.ContentLength = -1
		res.Uncompressed = true
	}

	// Count body bytes, the request is processed when the body is closed
	res.Body = counter.NewReadCloser(body, func(bytes int64, err error) {
		if tc != nil && tc.RequestProcessed != nil {
			tc.RequestProcessed(res, bytes, err)
		}
	})

	return res, nil
}

func handleSendError(startedAt time.Time, clientTimeout time.Duration, req *http.Request, err error) error {
	// Timeout
	var netErr net.Error
	if deadline, ok := req.Context().Deadline(); ok && errors.Is(err, context.DeadlineExceeded) {
		err = urlError(req, fmt.Errorf("timeout after %s", deadline.Sub(startedAt)))
	} else if errors.Is(err, context.Canceled) {
		err = urlError(req, fmt.Errorf("canceled after %s", time.Since(startedAt)))
	} else if errors.As(err, &netErr) && netErr.Timeout() {
		if strings.Contains(err.Error(), "Client.Timeout exceeded") {
			err = urlError(req, fmt.Errorf("timeout after %s", clientTimeout))
		} else {
			err = urlError(req, fmt.Errorf("timeout after %s", time.Since(startedAt)))
		}
	}

	// Url error
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = fmt.Errorf(`request %s "%s" failed: %w`, strings.ToUpper(urlErr.Op), urlErr.URL, urlErr.Err)
	}

	return err
}

// roundTripper wraps a http.RoundTripper and adds trace functionality.
type roundTripper struct {
	trace   *trace.ClientTrace
	wrapped http.RoundTripper
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// Trace request start
	if rt.trace != nil && rt.trace.HTTPRequestStart != nil {
		rt.trace.HTTPRequestStart(req)
	}

	// Send
	res, err := rt.wrapped.RoundTrip(req)

	// Trace request done
	if rt.trace != nil && rt.trace.HTTPRequestDone != nil {
		rt.trace.HTTPRequestDone(res, err)
	}

	return res, err
}

func urlError(req *http.Request, err error) *url.Error {
	return &url.Error{Op: req.Method, URL: req.URL.String(), Err: err}
}
