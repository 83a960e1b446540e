package trace

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"strings"
	"time"
)

const (
	dumpTraceMaxLength = 2000
	dumpMaskedValue    = "****"
)

// dumpMaskedHeaders contains canonical names of headers carrying credentials.
var dumpMaskedHeaders = map[string]bool{ //nolint:gochecknoglobals
	"Authorization": true,
	"Api-Key":       true,
	"Cookie":        true,
	"Set-Cookie":    true,
}

// dumpTrace holds state of one request, from the start to the processed body.
type dumpTrace struct {
	wr          io.Writer
	method      string
	requestURI  string
	statusCode  int
	startTime   time.Time
	headersTime time.Time
}

// DumpTracer dumps HTTP request and response headers to a writer.
// Values of the Authorization, Api-Key and cookie headers are masked.
// The response body is read by the request builder, so only its size is reported.
func DumpTracer(wr io.Writer) Factory {
	return func(ctx context.Context, _ *http.Request) (context.Context, *ClientTrace) {
		d := &dumpTrace{wr: wr}
		return ctx, &ClientTrace{
			HTTPRequestStart: d.requestStart,
			HTTPRequestDone:  d.requestDone,
			RequestProcessed: d.requestProcessed,
		}
	}
}

func (d *dumpTrace) requestStart(r *http.Request) {
	d.startTime = time.Now()
	d.method = r.Method
	d.requestURI = r.URL.RequestURI()

	d.log()
	d.log(">>>>>> HTTP DUMP")
	if out, err := httputil.DumpRequestOut(r, true); err == nil {
		d.dump(maskDump(string(out)))
	} else {
		d.log("cannot dump request: ", err)
	}
}

// requestDone is called for each redirect, the last response is reported by the requestProcessed.
func (d *dumpTrace) requestDone(r *http.Response, err error) {
	d.log("------")
	switch {
	case err != nil:
		d.log("ERROR: ", err)
	case r != nil:
		d.statusCode = r.StatusCode
		d.headersTime = time.Now()
		if out, err := httputil.DumpResponse(r, false); err == nil {
			d.log(maskDump(strings.TrimSpace(string(out))))
		} else {
			d.log("cannot dump response headers: ", err)
		}
	}
	d.log("<<<<<< HTTP DUMP END")
}

func (d *dumpTrace) requestProcessed(_ *http.Response, bodyBytes int64, err error) {
	d.log()
	d.log(">>>>>> HTTP REQUEST PROCESSED", "| ", d.method, d.requestURI, d.statusCode, "| BODY:", bodyBytes, "| ERROR:", err, "| HEADERS AT:", d.headersTime.Sub(d.startTime), "| DONE AT:", time.Since(d.startTime))
}

func (d *dumpTrace) dump(out string) {
	out = strings.TrimSpace(out)
	if len(out) > dumpTraceMaxLength && os.Getenv("HTTP_DUMP_TRACE_FULL") != "true" { //nolint:forbidigo
		d.log(out[:dumpTraceMaxLength])
		d.log("... (set env HTTP_DUMP_TRACE_FULL=true to see full output)")
	} else {
		d.log(out)
	}
}

func (d *dumpTrace) log(a ...any) {
	_, _ = fmt.Fprintln(d.wr, a...)
}

// maskDump replaces values of the credential headers in the head of a dumped message.
// The head ends with the first empty line, the body is kept as it is.
func maskDump(out string) string {
	lines := strings.SplitAfter(out, "\n")
	for i, line := range lines {
		content := strings.TrimRight(line, "\r\n")
		if content == "" {
			break
		}
		name, _, found := strings.Cut(content, ":")
		if found && dumpMaskedHeaders[http.CanonicalHeaderKey(strings.TrimSpace(name))] {
			lines[i] = name + ": " + dumpMaskedValue + line[len(content):]
		}
	}
	return strings.Join(lines, "")
}
