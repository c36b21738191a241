package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/preston-bernstein/epl-compare-service/internal/http/requestutil"
	"github.com/preston-bernstein/epl-compare-service/internal/logging"
	"github.com/preston-bernstein/epl-compare-service/internal/metrics"
)

// LoggingMiddleware assigns a request id, attaches a request-scoped logger,
// recovers panics as 500s, and logs and records every request.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}
	return RequestID(accessLog(baseLogger, recorder, next))
}

func accessLog(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, RequestIDFromContext(r.Context())),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("query", r.URL.RawQuery),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		sw := &statusWriter{ResponseWriter: w}

		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.Error("handler panic", "panic", p, "stack", string(debug.Stack()))
				if sw.status == 0 {
					http.Error(sw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}

			duration := time.Since(start)
			recorder.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), sw.Status(), duration)
			logger.Info("request complete",
				slog.Int(logging.FieldStatusCode, sw.Status()),
				slog.Int("bytes", sw.bytes),
				slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			)
		}()

		next.ServeHTTP(sw, r.WithContext(logging.WithLogger(r.Context(), logger)))
	})
}
