package auth

import (
	"context"
	"errors"
	"time"
)

// TokenStore holds refresh tokens keyed by their opaque value. Tokens expire
// on their own after the configured validity; Revoke removes one eagerly.
type TokenStore interface {
	Save(ctx context.Context, token string, userID string, validity time.Duration) error

	// UserID resolves a refresh token to its owner, or ErrTokenNotFound if
	// the token is unknown, expired, or revoked.
	UserID(ctx context.Context, token string) (string, error)

	Revoke(ctx context.Context, token string) error
}

var ErrTokenNotFound = errors.New("refresh token not found")
