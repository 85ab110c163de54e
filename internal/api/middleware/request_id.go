package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mando-cx/mando-api/internal/api/shared"
	"github.com/mando-cx/mando-api/internal/platform/logger"
)

// RequestID assigns every request an ID, reusing a well-formed inbound
// X-Request-Id. The ID is echoed in the response header and stored in the
// request context together with a logger that carries it.
// This middleware should be applied first so every later stage sees the ID.
func RequestID(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(shared.RequestIDHeader)
			if !shared.IsValidRequestID(requestID) {
				requestID = shared.NewRequestID()
			}

			w.Header().Set(shared.RequestIDHeader, requestID)

			ctx := shared.WithRequestID(r.Context(), requestID)
			ctx = logger.WithLogger(ctx, base.With(slog.String("request_id", requestID)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
