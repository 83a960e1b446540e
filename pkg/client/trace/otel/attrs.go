package otel

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/semconv/v1.18.0/httpconv"
)

const (
	maskedAttrValue = "****"
)

type attributes struct {
	config config
	// request attributes for span and metrics
	request []attribute.KeyValue
	// requestExtra attributes for span only
	requestExtra []attribute.KeyValue
	// httpResponse attributes for span and metrics
	httpResponse []attribute.KeyValue
	// httpResponseExtra attributes for span only
	httpResponseExtra []attribute.KeyValue
	// httpResponseError attributes for span only
	httpResponseError []attribute.KeyValue
}

func newAttributes(cfg config, req *http.Request) *attributes {
	out := &attributes{config: cfg}
	reqURL := req.URL

	out.request = []attribute.KeyValue{
		attribute.String("request.method", req.Method),
		attribute.String("request.url.path", mustURLPathUnescape(reqURL.Path)),
		attribute.String("request.url.host", reqURL.Host),
	}

	out.requestExtra = append(out.requestExtra, attribute.String("request.url.full", redactedURL(cfg, reqURL)))
	for k, values := range reqURL.Query() {
		value := strings.Join(values, ";")
		if _, found := cfg.redactedQueryParams[strings.ToLower(k)]; found {
			value = maskedAttrValue
		}
		out.requestExtra = append(out.requestExtra, attribute.String("request.params.query."+k, value))
	}
	sortAttrs(out.requestExtra)

	return out
}

func (v *attributes) headerAttrs(prefix string, header http.Header) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for key, values := range header {
		key = strings.ToLower(key)
		value := strings.Join(values, ";")
		if _, found := v.config.redactedHeaders[key]; found {
			value = maskedAttrValue
		}
		attrs = append(attrs, attribute.String(prefix+key, value))
	}
	sortAttrs(attrs)
	return attrs
}

func (v *attributes) requestAttrs(req *http.Request) []attribute.KeyValue {
	attrs := httpconv.ClientRequest(req)
	for _, attr := range v.headerAttrs("http.header.", req.Header) {
		if attr.Key == "http.header.user-agent" {
			// Skip, it is already present from httpconv
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func (v *attributes) SetFromResponse(res *http.Response, err error) {
	if res == nil {
		v.httpResponse = nil
		v.httpResponseExtra = nil
	} else {
		v.httpResponse = httpconv.ClientResponse(res)
		v.httpResponseExtra = v.headerAttrs("http.response.header.", res.Header)
	}

	var netErr net.Error
	errors.As(err, &netErr)
	v.httpResponseError = []attribute.KeyValue{
		attribute.Bool("http.response.isSuccess", isSuccess(res, err)),
		attribute.Bool("http.response.error.has", err != nil),
		attribute.Bool("http.response.error.net", netErr != nil),
		attribute.Bool("http.response.error.timeout", netErr != nil && netErr.Timeout()),
		attribute.Bool("http.response.error.cancelled", errors.Is(err, context.Canceled)),
		attribute.Bool("http.response.error.deadline_exceeded", errors.Is(err, context.DeadlineExceeded)),
	}
}

func isSuccess(r *http.Response, err error) bool {
	if err != nil {
		return false
	}
	return r != nil && r.StatusCode < http.StatusBadRequest
}

func redactedURL(cfg config, in *url.URL) string {
	out := *in
	out.User = nil
	if len(cfg.redactedQueryParams) > 0 && out.RawQuery != "" {
		query := out.Query()
		for k := range query {
			if _, found := cfg.redactedQueryParams[strings.ToLower(k)]; found {
				query.Set(k, maskedAttrValue)
			}
		}
		out.RawQuery = query.Encode()
	}
	return mustURLPathUnescape(out.String())
}

func sortAttrs(attrs []attribute.KeyValue) {
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Key < attrs[j].Key
	})
}

func mustURLPathUnescape(in string) string {
	out, err := url.PathUnescape(in)
	if err != nil {
		return in
	}
	return out
}
