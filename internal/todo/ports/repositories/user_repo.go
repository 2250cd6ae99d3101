// Package repositories declares the persistence ports.
package repositories

import (
	"context"

	"gotodo/internal/todo/domain/entities"
)

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	// FindByEmail returns the user including its password hash.
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
