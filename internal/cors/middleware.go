package cors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/mando-cx/mando-api/internal/platform/logger"
)

// Options configures the CORS middleware.
type Options struct {
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int
	// OnVerdict, when set, is called once per request that reaches the
	// middleware, with the validator's verdict.
	OnVerdict func(Result)
}

// DefaultAllowedMethods are the methods advertised to preflight requests.
var DefaultAllowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// Middleware applies the validator's verdict to every request.
//
// Allow echoes the origin with Access-Control-Allow-Credentials: true.
// AllowAny sets the wildcard origin and no credentials header. Reject emits
// no CORS headers at all; the request is still served.
func Middleware(v *Validator, opts Options) func(http.Handler) http.Handler {
	methods := opts.AllowedMethods
	if len(methods) == 0 {
		methods = DefaultAllowedMethods
	}

	negotiate := cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return v.Validate(origin).Kind == Allow
		},
		AllowedMethods:   methods,
		AllowedHeaders:   opts.AllowedHeaders,
		ExposedHeaders:   opts.ExposedHeaders,
		AllowCredentials: true,
		MaxAge:           opts.MaxAge,
	})

	return func(next http.Handler) http.Handler {
		negotiated := negotiate(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := v.Validate(r.Header.Get("Origin"))
			if opts.OnVerdict != nil {
				opts.OnVerdict(result)
			}

			switch result.Kind {
			case AllowAny:
				// go-chi/cors ignores requests without an Origin header.
				w.Header().Set("Access-Control-Allow-Origin", "*")
				next.ServeHTTP(w, r)
				return
			case Reject:
				logger.FromContextOrDefault(r.Context(), nil).Debug("cors origin rejected",
					slog.String("origin", r.Header.Get("Origin")),
					slog.String("reason", result.Reason),
				)
			}

			negotiated.ServeHTTP(w, r)
		})
	}
}
