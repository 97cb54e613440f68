package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// contextKey keeps request context keys private to this package.
type contextKey string

const ctxClaims contextKey = "claims"

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Authenticate(token string) (*auth.Claims, error)
}

// RoleLookup resolves the current role of a user.
type RoleLookup interface {
	Role(ctx context.Context, id string) (models.Role, error)
}

// WithAuth rejects requests without a valid "Authorization: Bearer <jwt>"
// header with 401 and stores the verified claims in the request context.
func WithAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
			claims, err := tokens.Authenticate(tokenStr)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentClaims returns the verified claims WithAuth stored, or nil.
func CurrentClaims(r *http.Request) *auth.Claims {
	if value, ok := r.Context().Value(ctxClaims).(*auth.Claims); ok {
		return value
	}
	return nil
}

// RequireRole admits only callers whose profile currently carries role.
// The role is read from the profile, not the token, since tokens issued
// before the profile existed default to resident.
func RequireRole(roles RoleLookup, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := CurrentClaims(r)
			if claims == nil {
				WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}
			current, err := roles.Role(r.Context(), claims.ID)
			if err != nil || current != role {
				WriteError(w, http.StatusForbidden, "Not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
