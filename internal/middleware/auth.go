package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aurachat/aura/backend/pkg/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// TokenVerifier resolves a bearer token to a user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate gates a route group behind token verification and injects
// the trusted account identity into the request context. Downstream code
// never re-validates tokens.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			raw = strings.TrimPrefix(raw, "Bearer ")
			if raw == "" {
				utils.RespondError(w, http.StatusUnauthorized, "missing token")
				return
			}

			userID, err := verifier.Verify(raw)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated account identity from the context.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
