// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP processing chain.

Order used by the API server, outermost first:

  - RequestID: correlation ID in context and response header.
  - Tracing: server span joined to any incoming traceparent.
  - StructuredLogger: per-request slog logger and one access line.
  - Metrics: Prometheus counters and latency per route pattern.
  - RateLimit, PanicRecovery, CORS.

Handlers fetch the request logger with ctxutil.GetLogger.
*/
package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/taibuivan/library/internal/platform/constants"
	"github.com/taibuivan/library/internal/platform/ctxutil"
	"github.com/taibuivan/library/pkg/uuidv7"
)

// RequestID keeps a client-supplied X-Request-ID or generates a UUIDv7 one.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuidv7.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// statusRecorder remembers the status written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (recorder *statusRecorder) WriteHeader(code int) {
	if recorder.written {
		return
	}
	recorder.status = code
	recorder.written = true
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *statusRecorder) Write(body []byte) (int, error) {
	if !recorder.written {
		recorder.WriteHeader(http.StatusOK)
	}
	return recorder.ResponseWriter.Write(body)
}

// wrapWriter reuses an existing recorder so that nested middleware observe
// the same status.
func wrapWriter(writer http.ResponseWriter) *statusRecorder {
	if recorder, ok := writer.(*statusRecorder); ok {
		return recorder
	}
	return &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
}

// RealIP returns the client address, preferring X-Real-IP, then the first
// X-Forwarded-For hop, then the connection peer.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// writeError renders the same error envelope as the respond package. It is
// duplicated here because respond depends on the request logger this package
// installs.
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
