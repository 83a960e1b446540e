package trace_test

import (
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/twileloop/go-jetapi/pkg/client"
	"github.com/twileloop/go-jetapi/pkg/client/trace"
)

func TestZapTracer(t *testing.T) {
	t.Parallel()

	// Mocked response
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", `https://example.com`, httpmock.NewStringResponder(200, "OK"))

	// Create client
	core, logs := observer.New(zapcore.DebugLevel)
	c := client.New().
		WithTransport(transport).
		WithTrace(trace.ZapTracer(zap.New(core)))

	// Test
	assert.Equal(t, "OK", sendAndRead(t, c, "https://example.com"))

	var messages []string
	for _, entry := range logs.All() {
		assert.Equal(t, zapcore.DebugLevel, entry.Level)
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"http request start", "http request done", "request processed"}, messages)

	processed := logs.FilterMessage("request processed").All()
	require.Len(t, processed, 1)
	fields := processed[0].ContextMap()
	assert.Equal(t, uint64(1), fields["request.id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "https://example.com", fields["url"])
	assert.Equal(t, int64(200), fields["status"])
	assert.Equal(t, int64(2), fields["body.bytes"])
}

func TestZapTracer_Error(t *testing.T) {
	t.Parallel()

	// Mocked response
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", `https://example.com`, httpmock.NewErrorResponder(assert.AnError))

	// Create client
	core, logs := observer.New(zapcore.DebugLevel)
	c := client.New().
		WithTransport(transport).
		WithTrace(trace.ZapTracer(zap.New(core)))

	// Test
	_, err := c.Send(t.Context(), mustNewRequest(t, "https://example.com"))
	assert.Error(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "http request failed", warnings[0].Message)
	assert.Equal(t, "request processed with error", warnings[1].Message)
	errMsg, _ := warnings[1].ContextMap()["error"].(string)
	assert.True(t, strings.HasPrefix(errMsg, `request GET "https://example.com" failed: `))
}
