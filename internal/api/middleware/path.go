package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// NormalizePath rewrites the request path so routing sees only the segments
// below basePath: the prefix is removed if present, then leading and trailing
// slashes are trimmed. "/api/tasks/" under base "/api" routes as "/tasks".
// The query string is left alone.
//
// Normalization works on the escaped path and keeps it in RawPath, so route
// parameters are always matched percent-encoded whether or not the path was
// rewritten.
func NormalizePath(basePath string) func(http.Handler) http.Handler {
	basePath = strings.TrimRight(basePath, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			escaped := r.URL.EscapedPath()
			normalized := escaped
			if basePath != "" && strings.HasPrefix(normalized, basePath) {
				normalized = normalized[len(basePath):]
			}
			normalized = "/" + strings.Trim(normalized, "/")

			if normalized != escaped {
				path, err := url.PathUnescape(normalized)
				if err != nil {
					path = normalized
				}
				r2 := r.Clone(r.Context())
				r2.URL.Path = path
				r2.URL.RawPath = normalized
				r = r2
			}

			next.ServeHTTP(w, r)
		})
	}
}
