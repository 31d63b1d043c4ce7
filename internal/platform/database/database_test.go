// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/taibuivan/library/internal/platform/database"
)

// recordSpans installs a recording tracer provider for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	return recorder
}

/*
TestDo_Spans verifies each operation is traced and failures mark the span.
*/
func TestDo_Spans(t *testing.T) {
	recorder := recordSpans(t)
	db, _ := newMockDB(t)
	uow := openUnitOfWork(t, db)
	ctx := context.Background()

	require.NoError(t, database.Do(ctx, uow, "books.get_by_id", func(ctx context.Context, db database.Executor) error {
		return nil
	}))

	boom := errors.New("boom")
	err := database.Do(ctx, uow, "books.create", func(ctx context.Context, db database.Executor) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "books.get_by_id", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, "books.create", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}
