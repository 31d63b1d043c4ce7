package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/library/internal/platform/ctxutil"
)

const tracerName = "github.com/taibuivan/library/internal/platform/middleware"

// Tracing opens a server span per request, continuing any W3C traceparent
// sent by the caller. The span is renamed to the chi route pattern once
// routing has run, so /api/users/1 and /api/users/2 share one span name.
func Tracing() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(request.Context(), propagation.HeaderCarrier(request.Header))

			ctx, span := otel.Tracer(tracerName).Start(ctx, request.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", request.Method),
					attribute.String("url.path", request.URL.Path),
					attribute.String("http.request_id", ctxutil.GetRequestID(ctx)),
				),
			)
			defer span.End()

			wrappedWriter := wrapWriter(writer)
			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					span.SetName(request.Method + " " + pattern)
					span.SetAttributes(attribute.String("http.route", pattern))
				}
			}

			span.SetAttributes(attribute.Int("http.response.status_code", wrappedWriter.status))
			if wrappedWriter.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(wrappedWriter.status))
			}
		})
	}
}
