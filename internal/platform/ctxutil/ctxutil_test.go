package ctxutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/library/internal/platform/ctxutil"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0192f6a4-7c1e-7000-8000-000000000001")
	assert.Equal(t, "0192f6a4-7c1e-7000-8000-000000000001", ctxutil.GetRequestID(ctx))
}

func TestGetLogger_Fallback(t *testing.T) {
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(context.Background()))

	ctx := ctxutil.WithLogger(context.Background(), nil)
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))
}

func TestGetLogger_Stored(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

func TestGetLogger_TraceCorrelation(t *testing.T) {
	var output bytes.Buffer
	ctx := ctxutil.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&output, nil)))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	ctxutil.GetLogger(ctx).Info("copy_checked_out")

	var line map[string]any
	require.NoError(t, json.Unmarshal(output.Bytes(), &line))
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", line["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", line["span_id"])
}
