package authorization

import (
	"context"
	"strings"
)

// SystemActor is recorded when a change has no authenticated actor.
const SystemActor = "system"

// Identity is the authenticated caller of a request.
type Identity struct {
	Username string
	Role     UserRole
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Actor picks the name recorded on a change: the explicit value when given, otherwise
// the caller's username, otherwise SystemActor.
func Actor(ctx context.Context, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	if id, ok := IdentityFromContext(ctx); ok && id.Username != "" {
		return id.Username
	}
	return SystemActor
}
