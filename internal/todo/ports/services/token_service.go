package services

import (
	"context"
	"time"
)

// TokenService issues and validates access tokens.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID string) (string, time.Time, error)

	// ValidateAccessToken returns the user id bound to token.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
