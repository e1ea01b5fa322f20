// backend/internal/adapters/in/http/middleware/cors.go
package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the storefront / admin front-ends to call the API.
// origins ["*"] is for local development only.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", HeaderCartID, HeaderRequestID},
		ExposedHeaders:   []string{"Content-Disposition", HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           600,
	})
}
