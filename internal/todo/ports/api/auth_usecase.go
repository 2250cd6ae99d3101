// Package api declares the use case ports consumed by the HTTP layer.
package api

import (
	"context"

	"gotodo/internal/todo/domain/services"
)

// AuthUseCase registers and authenticates users.
type AuthUseCase interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)

	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}
