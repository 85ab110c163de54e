package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// TrailingSlash redirects GET and HEAD requests for paths ending in "/" to
// the path without it. Other methods and paths listed in keep are served
// as-is, since clients replay a redirected POST as a GET.
func TrailingSlash(keep ...string) func(http.Handler) http.Handler {
	exempt := make(map[string]bool, len(keep))
	for _, p := range keep {
		exempt[p] = true
	}

	return func(next http.Handler) http.Handler {
		redirect := chimw.RedirectSlashes(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt[r.URL.Path] || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
				next.ServeHTTP(w, r)
				return
			}
			redirect.ServeHTTP(w, r)
		})
	}
}
