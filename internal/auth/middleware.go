package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session"

// RequireSession guards privileged endpoints. It accepts either a
// bearer access token in the Authorization header (programmatic
// clients) or the session cookie (the browser client). The check runs
// before any handler logic; requests with no usable credential are
// rejected with 401 and never reach the handler.
func RequireSession(tm *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					if claims, err := tm.ValidateToken(parts[1]); err == nil {
						next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), claims.UserID)))
						return
					}
				}
			}

			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if userID, err := ValidateSession(cookie.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Unauthorized"}`))
		})
	}
}

func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext retrieves the authenticated user's ID placed in
// the context by RequireSession.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok
}
