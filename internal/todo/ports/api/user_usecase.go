package api

import (
	"context"

	"gotodo/internal/todo/domain/entities"
)

// UserUseCase reads user profiles.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)
}
