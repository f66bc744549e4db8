package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dkovac/relay/internal/token"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthCookieName is the HTTP-only cookie carrying the signed credential.
const AuthCookieName = "jwt"

// Auth verifies the credential on every protected route and injects the
// user ID into the request context. The cookie is the primary transport; a
// Bearer header works too for non-browser clients.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ""
			if cookie, err := r.Cookie(AuthCookieName); err == nil {
				tokenStr = cookie.Value
			}
			if tokenStr == "" {
				if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
					tokenStr = strings.TrimPrefix(header, "Bearer ")
				}
			}
			if tokenStr == "" {
				http.Error(w, `{"message":"Unauthorized - no token provided"}`, http.StatusUnauthorized)
				return
			}

			userID, err := token.Verify(tokenStr, secret)
			if err != nil {
				http.Error(w, `{"message":"Unauthorized - invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the verified user ID from request context.
func GetUserID(ctx context.Context) uuid.UUID {
	return ctx.Value(UserIDKey).(uuid.UUID)
}
