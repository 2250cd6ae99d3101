// Package services implements the password and token ports.
package services

import (
	"fmt"
	"time"

	"gotodo/internal/todo/ports/services"
)

// ServiceFactory builds the auth services from configuration.
type ServiceFactory struct {
	passwordService services.PasswordService
	tokenService    services.TokenService
}

// NewServiceFactory fails when jwtSecretKey is empty.
func NewServiceFactory(jwtSecretKey string, accessTokenTTL time.Duration, bcryptCost int) (*ServiceFactory, error) {
	tokenService, err := NewJWT(jwtSecretKey, accessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    tokenService,
	}, nil
}

// PasswordService returns the password service.
func (f *ServiceFactory) PasswordService() services.PasswordService {
	return f.passwordService
}

// TokenService returns the token service.
func (f *ServiceFactory) TokenService() services.TokenService {
	return f.tokenService
}
