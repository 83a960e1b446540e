// Package otel provides OpenTelemetry tracing and metrics for requests sent by the client.Client.
//
// The package provides 2 levels of telemetry:
//
// 1. Request level
//   - One span and metrics for each "logical" request, from the send until the response body is closed.
//   - Span name is "jetapi.client.request", it wraps all redirects together.
//   - Metrics names start with "jetapi.client." (clientPrefix const).
//
// 2. HTTP level
//   - One span and metrics for every sent HTTP request, including redirects.
//   - Span name is "http.request", child spans "http.dns" and "http.connect" are created by the httptrace hooks.
//   - Metrics names start with "jetapi.http." (httpPrefix const).
package otel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptrace"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelMetric "go.opentelemetry.io/otel/metric"
	metricNoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	otelTrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/twileloop/go-jetapi/pkg/client/trace"
)

const (
	traceAppName     = "github.com/twileloop/go-jetapi"
	attrResourceName = attribute.Key("resource.name")
	// Low-level tracing, for each redirect.
	httpPrefix          = "jetapi.http."
	httpSpanPrefix      = "http."
	httpRequestSpanName = httpSpanPrefix + "request"
	httpDNSSpanName     = httpSpanPrefix + "dns"
	httpConnectSpanName = httpSpanPrefix + "connect"
	attrDNSAddresses    = attribute.Key("http.dns.addrs")
	attrRemoteAddr      = attribute.Key("http.remote")
	attrConnectNetwork  = attribute.Key("http.conn.network")
	attrReadBytes       = attribute.Key("http.read_bytes")
	// High-level tracing.
	clientPrefix          = "jetapi.client."
	clientRequestSpanName = clientPrefix + "request"
	// Extra attributes for DataDog.
	attrSpanKind            = attribute.Key("span.kind")
	attrSpanKindValueClient = "client"
	attrSpanType            = attribute.Key("span.type")
	attrSpanTypeValueHTTP   = "http"
)

// NewTrace creates a trace.Factory which reports spans and metrics to the providers.
// Nil providers are replaced by no-op implementations.
func NewTrace(tracerProvider otelTrace.TracerProvider, meterProvider otelMetric.MeterProvider, opts ...Option) trace.Factory {
	cfg := newConfig(opts)
	if tracerProvider == nil {
		tracerProvider = noop.NewTracerProvider()
	}
	if meterProvider == nil {
		meterProvider = metricNoop.NewMeterProvider()
	}
	tracer := tracerProvider.Tracer(traceAppName)
	meters := newMeters(meterProvider.Meter(traceAppName))

	return func(rootCtx context.Context, req *http.Request) (context.Context, *trace.ClientTrace) {
		tc := &trace.ClientTrace{}
		attrs := newAttributes(cfg, req)

		// Create root span and metrics, it may contain multiple HTTP requests (redirects).
		var rootSpan otelTrace.Span
		startTime := time.Now()
		meters.client.inFlight.Add(rootCtx, 1, otelMetric.WithAttributes(attrs.request...))
		rootCtx, rootSpan = tracer.Start(
			rootCtx,
			clientRequestSpanName,
			otelTrace.WithSpanKind(otelTrace.SpanKindClient),
			otelTrace.WithAttributes(
				attrResourceName.String(req.URL.Path),
				attrSpanKind.String(attrSpanKindValueClient),
				attrSpanType.String(attrSpanTypeValueHTTP),
			),
			otelTrace.WithAttributes(attrs.request...),
			otelTrace.WithAttributes(attrs.requestExtra...),
		)
		tc.RequestProcessed = func(_ *http.Response, bodyBytes int64, err error) {
			elapsedTime := float64(time.Since(startTime)) / float64(time.Millisecond)

			// Metrics
			meterAttrs := append(append([]attribute.KeyValue{}, attrs.request...), attrs.httpResponse...)
			meters.client.inFlight.Add(rootCtx, -1, otelMetric.WithAttributes(attrs.request...)) // same attributes/dimensions as above (+1)!
			meters.client.duration.Record(rootCtx, elapsedTime, otelMetric.WithAttributes(meterAttrs...))
			meters.client.bodyBytes.Add(rootCtx, bodyBytes, otelMetric.WithAttributes(meterAttrs...))

			// Tracing, add attributes from the last response
			rootSpan.SetAttributes(attrs.httpResponse...)
			rootSpan.SetAttributes(attrs.httpResponseExtra...)
			rootSpan.SetAttributes(attrs.httpResponseError...)
			rootSpan.SetAttributes(attrReadBytes.Int64(bodyBytes))
			if err == nil {
				rootSpan.End()
			} else {
				rootSpan.RecordError(err)
				rootSpan.SetStatus(codes.Error, err.Error())
				rootSpan.End(otelTrace.WithStackTrace(true))
			}
		}

		// Handle HTTP requests
		var httpCtx context.Context
		var httpRequestSpan otelTrace.Span
		var httpRequestAttrs []attribute.KeyValue
		var httpRequestStart time.Time
		tc.HTTPRequestStart = func(r *http.Request) {
			httpCtx, httpRequestSpan = tracer.Start(
				rootCtx,
				httpRequestSpanName,
				otelTrace.WithSpanKind(otelTrace.SpanKindClient),
				otelTrace.WithAttributes(
					attrResourceName.String(r.URL.Path),
					attrSpanKind.String(attrSpanKindValueClient),
					attrSpanType.String(attrSpanTypeValueHTTP),
				),
			)

			// Inject trace headers
			if cfg.propagators != nil {
				cfg.propagators.Inject(httpCtx, propagation.HeaderCarrier(r.Header))
			}

			httpRequestStart = time.Now()
			httpRequestAttrs = []attribute.KeyValue{semconv.HTTPMethodKey.String(r.Method), semconv.NetPeerName(r.URL.Hostname())}
			meters.http.inFlight.Add(rootCtx, 1, otelMetric.WithAttributes(httpRequestAttrs...))
			httpRequestSpan.SetAttributes(attrs.requestAttrs(r)...)
		}
		tc.HTTPRequestDone = func(res *http.Response, err error) {
			elapsedTime := float64(time.Since(httpRequestStart)) / float64(time.Millisecond)
			attrs.SetFromResponse(res, err)

			// Metrics
			meters.http.inFlight.Add(rootCtx, -1, otelMetric.WithAttributes(httpRequestAttrs...)) // same attributes/dimensions as in HTTPRequestStart!
			meters.http.duration.Record(
				rootCtx,
				elapsedTime,
				otelMetric.WithAttributes(httpRequestAttrs...),
				otelMetric.WithAttributes(attrs.httpResponse...),
			)

			// Tracing
			if httpRequestSpan == nil {
				return
			}
			httpRequestSpan.SetAttributes(attrs.httpResponse...)
			httpRequestSpan.SetAttributes(attrs.httpResponseExtra...)
			switch {
			case err != nil:
				httpRequestSpan.RecordError(err)
				httpRequestSpan.SetStatus(codes.Error, err.Error())
			case res != nil && res.StatusCode >= http.StatusBadRequest:
				httpErr := fmt.Errorf(`HTTP status code: %d %s`, res.StatusCode, http.StatusText(res.StatusCode))
				httpRequestSpan.RecordError(httpErr)
				httpRequestSpan.SetStatus(codes.Error, httpErr.Error())
			}
			httpRequestSpan.End()
			httpRequestSpan = nil
		}

		// Low-level tracing by the httptrace hooks.
		// httptrace: DNS
		{
			var dnsSpan otelTrace.Span
			tc.DNSStart = func(info httptrace.DNSStartInfo) {
				_, dnsSpan = tracer.Start(
					httpCtx,
					httpDNSSpanName,
					otelTrace.WithSpanKind(otelTrace.SpanKindClient),
					otelTrace.WithAttributes(semconv.NetHostName(info.Host)),
				)
			}
			tc.DNSDone = func(info httptrace.DNSDoneInfo) {
				if dnsSpan == nil {
					return
				}
				var addrs []string
				for _, netAddr := range info.Addrs {
					addrs = append(addrs, netAddr.String())
				}
				dnsSpan.SetAttributes(attrDNSAddresses.StringSlice(addrs))
				if info.Err != nil {
					dnsSpan.RecordError(info.Err)
					dnsSpan.SetStatus(codes.Error, info.Err.Error())
				}
				dnsSpan.End()
				dnsSpan = nil
			}
		}
		// httptrace: Connect
		{
			var connectSpan otelTrace.Span
			tc.ConnectStart = func(network, addr string) {
				_, connectSpan = tracer.Start(
					httpCtx,
					httpConnectSpanName,
					otelTrace.WithSpanKind(otelTrace.SpanKindClient),
					otelTrace.WithAttributes(
						attrRemoteAddr.String(addr),
						attrConnectNetwork.String(network),
					),
				)
			}
			tc.ConnectDone = func(network, addr string, err error) {
				if connectSpan == nil {
					return
				}
				if err != nil {
					connectSpan.RecordError(err)
					connectSpan.SetStatus(codes.Error, err.Error())
				}
				connectSpan.End()
				connectSpan = nil
			}
		}

		return rootCtx, tc
	}
}
