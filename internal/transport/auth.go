package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

// UserHeader lets a caller pick the acting user when auth is disabled.
const UserHeader = "X-User-Id"

// IdentityResolver resolves the tenant and user a bearer token belongs to.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (tenantID, userID string, err error)
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			tenantID, userID, err := resolver.ResolveIdentity(r.Context(), token)
			if err != nil || tenantID == "" || userID == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{TenantID: tenantID, UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DefaultIdentityMiddleware assigns a fixed tenant when auth is disabled. The
// user comes from the X-User-Id header, falling back to defaultUser.
func DefaultIdentityMiddleware(defaultTenant, defaultUser string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserHeader))
			if userID == "" {
				userID = defaultUser
			}
			ctx := WithIdentity(r.Context(), Identity{TenantID: defaultTenant, UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
