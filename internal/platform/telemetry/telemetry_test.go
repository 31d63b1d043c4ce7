package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/taibuivan/library/internal/platform/telemetry"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), "library-api", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_TagsServiceName(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := telemetry.NewProvider("library-test", sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer("test").Start(context.Background(), "users.get_by_id")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "users.get_by_id", ended[0].Name())

	var serviceName string
	for _, attribute := range ended[0].Resource().Attributes() {
		if attribute.Key == "service.name" {
			serviceName = attribute.Value.AsString()
		}
	}
	assert.Equal(t, "library-test", serviceName)
}
