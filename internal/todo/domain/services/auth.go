// Package services holds the auth domain errors and result types.
package services

import (
	"errors"
	"time"

	"gotodo/internal/todo/domain/entities"
)

// Auth errors.
var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
)

// AuthResult is returned by register and login.
type AuthResult struct {
	User        *entities.User
	AccessToken string
	ExpiresAt   time.Time
}
