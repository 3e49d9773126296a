package api

import (
	"context"
	"errors"

	"github.com/sergiomago/inspiro/internal/identity"
)

// userContextKey is the context key for the authenticated user.
type userContextKey struct{}

// ErrNoUserInContext indicates no authenticated user was found in the context.
var ErrNoUserInContext = errors.New("no user in context")

// WithUser returns a new context with the authenticated user attached.
func WithUser(ctx context.Context, u identity.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, u)
}

// UserFromContext extracts the authenticated user from the context.
// Returns ErrNoUserInContext if not present.
func UserFromContext(ctx context.Context) (identity.User, error) {
	u, ok := ctx.Value(userContextKey{}).(identity.User)
	if !ok || u.ID == "" {
		return identity.User{}, ErrNoUserInContext
	}
	return u, nil
}

// MustUserFromContext extracts the authenticated user or panics.
// Use only when middleware guarantees user presence.
func MustUserFromContext(ctx context.Context) identity.User {
	u, err := UserFromContext(ctx)
	if err != nil {
		panic("user not in context: middleware misconfiguration")
	}
	return u
}
