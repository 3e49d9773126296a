// Package identity consumes the hosted auth provider through a narrow
// contract. Sign-up, sign-in, and session issuance all happen on the
// provider; this service only resolves tokens and user IDs.
package identity

import (
	"context"
	"errors"
)

// User is the slice of the provider's account record this service needs.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verifier resolves bearer tokens and user IDs against the auth provider.
type Verifier interface {
	// UserFromToken validates an end-user access token and returns the
	// account it belongs to.
	UserFromToken(ctx context.Context, token string) (User, error)

	// UserByID looks up an account by ID using service credentials. The
	// email delivery path uses it to resolve recipient addresses.
	UserByID(ctx context.Context, id string) (User, error)
}

var (
	// ErrUnauthorized means the token was missing, invalid, or expired.
	ErrUnauthorized = errors.New("invalid or expired token")

	// ErrUserNotFound means no account exists for the given ID.
	ErrUserNotFound = errors.New("user not found")
)
