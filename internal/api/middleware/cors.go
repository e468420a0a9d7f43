package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware adds CORS headers to HTTP responses. allowedOrigins is
// a comma-separated list; empty means wildcard (development).
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	allowed := []string{"*"}
	if strings.TrimSpace(allowedOrigins) != "" {
		allowed = strings.Split(allowedOrigins, ",")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(origin, allowed) {
				if allowed[0] == "*" {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || strings.TrimSpace(a) == origin {
			return true
		}
	}
	return false
}
