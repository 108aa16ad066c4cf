package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/coinfolio/Crypto-Portfolio-Tracker-Backend/internal/api/response"
)

// APIKeyMiddleware guards mutating endpoints with a shared key.
//
// The expected key is read from INTERNAL_API_KEY and compared against the
// X-API-Key request header. When no key is configured the middleware is a
// pass-through, so local development works without one.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
