package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"blog-service/responses"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDHeader carries the caller identity. Token verification happens at
// the gateway in front of this service; by the time a request arrives here
// the header value is trusted.
const UserIDHeader = "X-User-ID"

// RequireUser rejects requests without a caller identity and stores the user
// id on the request context for handlers.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(responses.APIResponse{
				Success: false,
				Message: "authentication required",
			})
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the authenticated caller id, empty when the request did not
// pass through RequireUser.
func UserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
