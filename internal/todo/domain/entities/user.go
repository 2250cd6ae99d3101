// Package entities defines the todo domain entities.
package entities

import (
	"errors"
	"strings"
	"time"
)

// User errors.
var (
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
	ErrUserNotFound = errors.New("user not found")
)

// User is an account. PasswordHash never leaves the service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
