// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/taibuivan/library/internal/platform/ctxutil"
)

// StructuredLogger injects a request-scoped logger and writes one
// http_request_finished line per request. 4xx log at WARN, 5xx at ERROR.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			wrappedWriter := wrapWriter(writer)

			next.ServeHTTP(wrappedWriter, request.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case wrappedWriter.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case wrappedWriter.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			ctxutil.GetLogger(ctx).Log(ctx, level, "http_request_finished",
				slog.Int("status", wrappedWriter.status),
				slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			)
		})
	}
}

// PanicRecovery turns a handler panic into a logged 500. http.ErrAbortHandler
// is re-raised so net/http can drop the connection as intended.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				logger.ErrorContext(request.Context(), "panic_recovered",
					slog.String("request_id", ctxutil.GetRequestID(request.Context())),
					slog.String("path", request.URL.Path),
					slog.Any("error", recovered),
					slog.String("stack", string(debug.Stack())),
				)

				writeError(writer, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
			}()

			next.ServeHTTP(writer, request)
		})
	}
}
