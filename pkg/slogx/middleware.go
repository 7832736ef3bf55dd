package slogx

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/amxprobe/pkg/idx"
)

// sensitiveParams never reach the logs in clear text. Authorization codes
// arrive on the callback query string.
var sensitiveParams = []string{"code", "state", "access_token", "refresh_token"}

// HTTPMiddleware logs requests and attaches a contextual logger into request context.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			reqID := r.Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = idx.New().String()
			}

			logger := base.With(
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			ctx := WithContext(r.Context(), logger)
			r = r.WithContext(ctx)

			next.ServeHTTP(rw, r)

			logger.Info("http_request",
				"status", rw.status,
				"query", RedactQuery(r.URL.Query()).Encode(),
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// RedactQuery returns a copy of q with credential-bearing parameters masked.
func RedactQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	for _, k := range sensitiveParams {
		if out.Has(k) {
			out.Set(k, "[redacted]")
		}
	}
	return out
}

type responseWriter struct {
	http.ResponseWriter

	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
