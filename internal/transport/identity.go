package transport

import "context"

// Identity is the tenant and user a request acts as.
type Identity struct {
	TenantID string
	UserID   string
}

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity from context, if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || id.TenantID == "" || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}
