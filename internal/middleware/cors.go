package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/hongminglow/labubu-portal/internal/remote"
)

// CORS allows the configured origins to call the portal. Listed origins may send the
// visitor cookie; a "*" entry allows any origin but never with credentials.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", remote.HeaderAuthToken},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			opts.AllowedOrigins = []string{"*"}
			opts.AllowCredentials = false
			return cors.Handler(opts)
		}
		opts.AllowedOrigins = append(opts.AllowedOrigins, strings.ToLower(origin))
	}
	return cors.Handler(opts)
}
