package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
	"github.com/courtside-dev/referee-system/services"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// Auth is the two-stage authorization gate: RequireUser verifies the bearer
// token and attaches the caller's id to the request context; RequireAdmin
// additionally loads the user and checks the ADMIN role against the store,
// so a stale role claim in a still-valid token cannot grant admin access.
type Auth struct {
	tokens services.TokenService
	users  repositories.UserRepository
}

func NewAuth(tokens services.TokenService, users repositories.UserRepository) *Auth {
	return &Auth{
		tokens: tokens,
		users:  users,
	}
}

func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeAuthError(w, http.StatusForbidden, "No token provided")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := a.tokens.Verify(token)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must be composed after RequireUser.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			writeAuthError(w, http.StatusInternalServerError, "Unable to validate user role")
			return
		}

		if user.Role != models.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "Require admin role")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated caller's id attached by
// RequireUser.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}

// ContextWithUserID is exported for handler tests that bypass the
// middleware chain.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
