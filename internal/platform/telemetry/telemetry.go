/*
Package telemetry installs the process-wide OpenTelemetry tracer provider.

When no OTLP endpoint is configured the global no-op provider is left in
place, so spans opened by the data-access layer cost nothing.

Usage:

	shutdown, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
	    return err
	}
	defer shutdown(context.Background())
*/
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/taibuivan/library/internal/platform/constants"
)

// Shutdown flushes buffered spans and releases the exporter.
type Shutdown func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup exports spans over OTLP/HTTP to endpoint, a full URL such as
// "http://collector:4318". An empty endpoint disables export.
func Setup(ctx context.Context, serviceName, endpoint string) (Shutdown, error) {
	if endpoint == "" {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create exporter: %w", err)
	}

	provider := NewProvider(serviceName, sdktrace.WithBatcher(exporter))

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}

// NewProvider builds a tracer provider tagged with the service identity.
// Span processors are supplied by the caller.
func NewProvider(serviceName string, options ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	identity := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(constants.AppVersion),
	)

	options = append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(identity),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	}, options...)

	return sdktrace.NewTracerProvider(options...)
}
