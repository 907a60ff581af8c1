package middlewarex

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestID returns the id assigned by chi's RequestID middleware.
func RequestID(ctx context.Context) (string, bool) {
	id := chimw.GetReqID(ctx)
	return id, id != ""
}

// RequestLogger attaches a logger tagged with the chi request id, so
// handlers can log through zerolog.Ctx(r.Context()), and echoes the id
// back to the caller.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := RequestID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(chimw.RequestIDHeader, id)
		l := log.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

// Logger returns the request-scoped logger, or the global one.
func Logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
