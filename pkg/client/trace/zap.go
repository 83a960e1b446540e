package trace

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ZapTracer logs each stage of a request as a structured entry.
// Successful stages are logged at debug level, errors at warn level.
func ZapTracer(logger *zap.Logger) Factory {
	var idGenerator uint64
	return func(ctx context.Context, req *http.Request) (context.Context, *ClientTrace) {
		requestID := atomic.AddUint64(&idGenerator, 1)
		log := logger.With(zap.Uint64("request.id", requestID))

		var startTime time.Time
		var statusCode int

		t := &ClientTrace{}
		t.HTTPRequestStart = func(r *http.Request) {
			startTime = time.Now()
			log.Debug("http request start", zap.String("method", r.Method), zap.String("url", r.URL.String()))
		}
		t.HTTPRequestDone = func(r *http.Response, err error) {
			if err != nil {
				log.Warn("http request failed", zap.Error(err), zap.Duration("duration", time.Since(startTime)))
				return
			}
			statusCode = r.StatusCode
			log.Debug("http request done", zap.Int("status", statusCode), zap.Duration("duration", time.Since(startTime)))
		}
		t.RequestProcessed = func(_ *http.Response, bodyBytes int64, err error) {
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Int("status", statusCode),
				zap.Int64("body.bytes", bodyBytes),
			}
			if err != nil {
				log.Warn("request processed with error", append(fields, zap.Error(err))...)
				return
			}
			log.Debug("request processed", fields...)
		}
		return ctx, t
	}
}
