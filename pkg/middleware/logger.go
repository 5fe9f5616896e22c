package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// NewStructuredLogger logs one line per request with the caller, route and outcome.
// It runs after Identity so the caller is known.
func NewStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				requestAttrs := []any{
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
				}
				if reqID := middleware.GetReqID(r.Context()); reqID != "" {
					requestAttrs = append(requestAttrs, slog.String("request_id", reqID))
				}
				if userID, ok := UserID(r.Context()); ok {
					requestAttrs = append(requestAttrs, slog.String("user_id", userID))
				}

				responseAttrs := slog.Group("response",
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("latency", time.Since(start).String()),
				)

				switch {
				case status >= 500:
					logger.ErrorContext(r.Context(), "server error", slog.Group("request", requestAttrs...), responseAttrs)
				case status >= 400:
					logger.WarnContext(r.Context(), "request rejected", slog.Group("request", requestAttrs...), responseAttrs)
				default:
					logger.InfoContext(r.Context(), "request completed", slog.Group("request", requestAttrs...), responseAttrs)
				}
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
