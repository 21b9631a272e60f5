package middleware

import (
	"encoding/json"
	"net/http"

	"blog-service/configs"
	"blog-service/responses"
)

// RecoveryMiddleware turns a handler panic into a 500 instead of tearing the
// connection down.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				configs.LogWithContext("http", "recovery").
					WithField("panic", rec).
					WithField("path", r.URL.Path).
					Error("handler panicked")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(responses.APIResponse{
					Success: false,
					Message: "internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
