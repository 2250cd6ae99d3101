// Package app implements the todo use cases.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/services"
	"gotodo/internal/todo/ports/api"
	"gotodo/internal/todo/ports/repositories"
	svc "gotodo/internal/todo/ports/services"
	"gotodo/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	logSignup         = "signup requested"
	logEmailTaken     = "email is already registered"
	logSignedUp       = "account created"
	logLogin          = "login requested"
	logUnknownEmail   = "login for unknown email"
	logWrongPassword  = "password does not match"
	logLoggedIn       = "login succeeded"
	logLookupFailed   = "user lookup failed"
	logHashFailed     = "password hashing failed"
	logInsertFailed   = "user insert failed"
	logVerifyFailed   = "password verification failed"
	logIssueFailed    = "token issue failed"
	errWrapLookup     = "looking up user"
	errWrapEmailTaken = "register"
	errWrapHash       = "hashing password"
	errWrapInsert     = "storing user"
	errWrapVerify     = "verifying password"
	errWrapIssue      = "issuing token"
	errWrapLogin      = "login"
)

type authUseCase struct {
	users     repositories.UserRepository
	passwords svc.PasswordService
	tokens    svc.TokenService
}

// NewAuthUseCase wires the signup and login flows.
func NewAuthUseCase(
	users repositories.UserRepository,
	passwords svc.PasswordService,
	tokens svc.TokenService,
) api.AuthUseCase {
	return &authUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Register creates a user and issues a token for it. Input shape is
// validated by the caller; the email is normalized here.
func (a *authUseCase) Register(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	email = entities.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, logSignup)

	if err := a.ensureEmailFree(ctx, log, email); err != nil {
		return nil, err
	}

	hash, err := a.passwords.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, logHashFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errWrapHash, err)
	}

	user, err := a.users.Create(ctx, &entities.User{Name: name, Email: email, PasswordHash: hash})
	switch {
	case errors.Is(err, services.ErrEmailAlreadyExists):
		// lost a race with a concurrent signup
		log.Debug(ctx, logEmailTaken)
		return nil, fmt.Errorf("%s: %w", errWrapEmailTaken, err)
	case err != nil:
		log.Error(ctx, logInsertFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errWrapInsert, err)
	}

	result, err := a.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, logSignedUp, zap.String("userID", user.ID))
	return result, nil
}

func (a *authUseCase) ensureEmailFree(ctx context.Context, log *logger.Logger, email string) error {
	existing, err := a.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, entities.ErrUserNotFound):
		return nil
	case err != nil:
		log.Error(ctx, logLookupFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errWrapLookup, err)
	case existing != nil:
		log.Debug(ctx, logEmailTaken)
		return fmt.Errorf("%s: %w", errWrapEmailTaken, services.ErrEmailAlreadyExists)
	}
	return nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both yield services.ErrInvalidCredentials.
func (a *authUseCase) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	email = entities.NormalizeEmail(email)
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, logLogin)

	user, err := a.authenticate(ctx, log, email, password)
	if err != nil {
		return nil, err
	}

	result, err := a.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, logLoggedIn, zap.String("userID", user.ID))
	return result, nil
}

func (a *authUseCase) authenticate(ctx context.Context, log *logger.Logger, email, password string) (*entities.User, error) {
	denied := fmt.Errorf("%s: %w", errWrapLogin, services.ErrInvalidCredentials)

	user, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		log.Debug(ctx, logUnknownEmail)
		return nil, denied
	}
	if err != nil {
		log.Error(ctx, logLookupFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errWrapLookup, err)
	}

	match, err := a.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil && !errors.Is(err, services.ErrInvalidPassword) {
		log.Error(ctx, logVerifyFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errWrapVerify, err)
	}
	if !match || err != nil {
		log.Debug(ctx, logWrongPassword)
		return nil, denied
	}
	return user, nil
}

func (a *authUseCase) issue(ctx context.Context, user *entities.User) (*services.AuthResult, error) {
	token, expiresAt, err := a.tokens.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		logger.Log(ctx).Error(ctx, logIssueFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errWrapIssue, services.ErrTokenGenerationFailed, err)
	}
	return &services.AuthResult{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}
