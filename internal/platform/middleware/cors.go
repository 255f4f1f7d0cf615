package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the widget API to be called from the listed origins ("*" when empty).
// Credentials are only allowed for explicit origins since the consent API relies on a visitor cookie.
func CORS(allowedOrigins ...string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	credentials := true
	for _, o := range allowedOrigins {
		if o == "*" {
			credentials = false
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-Id",
		},
		ExposedHeaders:   []string{"Link", "Location", "Retry-After", "X-Request-Id"},
		AllowCredentials: credentials,
		MaxAge:           300,
	})
}
