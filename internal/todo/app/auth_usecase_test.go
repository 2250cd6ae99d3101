package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotodo/internal/todo/app"
	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/domain/services"
)

const (
	testName     = "Ann"
	testEmail    = "a@x.com"
	testPassword = "Abcdef1!" //nolint:gosec
	testHash     = "$2a$10$hash"
	testToken    = "signed.jwt.token" //nolint:gosec
	testUserID   = "7f1c9a52-3b8e-4d6a-9c2f-0e1d2c3b4a59"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	expiresAt := time.Now().Add(15 * time.Minute)
	created := &entities.User{ID: testUserID, Name: testName, Email: testEmail, PasswordHash: testHash}

	tests := []struct {
		name       string
		email      string
		setupMocks func(users *mockUserRepository, passwords *mockPasswordService, tokens *mockTokenService)
		wantErr    error
	}{
		{
			name:  "success normalizes email",
			email: "  A@X.com ",
			setupMocks: func(users *mockUserRepository, passwords *mockPasswordService, tokens *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(nil, entities.ErrUserNotFound)
				passwords.On("Hash", ctx, testPassword).Return(testHash, nil)
				users.On("Create", ctx, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == testEmail && u.Name == testName && u.PasswordHash == testHash
				})).Return(created, nil)
				tokens.On("GenerateAccessToken", ctx, testUserID).Return(testToken, expiresAt, nil)
			},
		},
		{
			name:  "email already taken",
			email: testEmail,
			setupMocks: func(users *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(created, nil)
			},
			wantErr: services.ErrEmailAlreadyExists,
		},
		{
			name:  "email taken between check and insert",
			email: testEmail,
			setupMocks: func(users *mockUserRepository, passwords *mockPasswordService, _ *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(nil, entities.ErrUserNotFound)
				passwords.On("Hash", ctx, testPassword).Return(testHash, nil)
				users.On("Create", ctx, mock.Anything).Return(nil, services.ErrEmailAlreadyExists)
			},
			wantErr: services.ErrEmailAlreadyExists,
		},
		{
			name:  "lookup failure",
			email: testEmail,
			setupMocks: func(users *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(nil, errors.New("db down"))
			},
		},
		{
			name:  "token failure",
			email: testEmail,
			setupMocks: func(users *mockUserRepository, passwords *mockPasswordService, tokens *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(nil, entities.ErrUserNotFound)
				passwords.On("Hash", ctx, testPassword).Return(testHash, nil)
				users.On("Create", ctx, mock.Anything).Return(created, nil)
				tokens.On("GenerateAccessToken", ctx, testUserID).Return("", time.Time{}, services.ErrGeneratingJWTToken)
			},
			wantErr: services.ErrTokenGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			passwords := new(mockPasswordService)
			tokens := new(mockTokenService)
			tt.setupMocks(users, passwords, tokens)

			uc := app.NewAuthUseCase(users, passwords, tokens)
			result, err := uc.Register(ctx, testName, tt.email, testPassword)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			case tt.name == "lookup failure":
				require.Error(t, err)
				assert.NotErrorIs(t, err, services.ErrEmailAlreadyExists)
			default:
				require.NoError(t, err)
				assert.Equal(t, testToken, result.AccessToken)
				assert.Equal(t, expiresAt, result.ExpiresAt)
				assert.Equal(t, testUserID, result.User.ID)
			}

			users.AssertExpectations(t)
			passwords.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	expiresAt := time.Now().Add(15 * time.Minute)
	stored := &entities.User{ID: testUserID, Name: testName, Email: testEmail, PasswordHash: testHash}

	tests := []struct {
		name       string
		setupMocks func(users *mockUserRepository, passwords *mockPasswordService, tokens *mockTokenService)
		wantErr    error
	}{
		{
			name: "success",
			setupMocks: func(users *mockUserRepository, passwords *mockPasswordService, tokens *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(stored, nil)
				passwords.On("Verify", ctx, testPassword, testHash).Return(true, nil)
				tokens.On("GenerateAccessToken", ctx, testUserID).Return(testToken, expiresAt, nil)
			},
		},
		{
			name: "unknown email",
			setupMocks: func(users *mockUserRepository, _ *mockPasswordService, _ *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(nil, entities.ErrUserNotFound)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setupMocks: func(users *mockUserRepository, passwords *mockPasswordService, _ *mockTokenService) {
				users.On("FindByEmail", ctx, testEmail).Return(stored, nil)
				passwords.On("Verify", ctx, testPassword, testHash).Return(false, nil)
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepository)
			passwords := new(mockPasswordService)
			tokens := new(mockTokenService)
			tt.setupMocks(users, passwords, tokens)

			uc := app.NewAuthUseCase(users, passwords, tokens)
			result, err := uc.Login(ctx, "A@x.com", testPassword)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testToken, result.AccessToken)
				assert.Equal(t, testUserID, result.User.ID)
			}

			users.AssertExpectations(t)
			passwords.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	ctx := context.Background()

	users := new(mockUserRepository)
	passwords := new(mockPasswordService)
	users.On("FindByEmail", ctx, "nobody@x.com").Return(nil, entities.ErrUserNotFound)
	users.On("FindByEmail", ctx, testEmail).Return(&entities.User{ID: testUserID, PasswordHash: testHash}, nil)
	passwords.On("Verify", ctx, "Wrong123!", testHash).Return(false, nil)

	uc := app.NewAuthUseCase(users, passwords, new(mockTokenService))

	_, errUnknown := uc.Login(ctx, "nobody@x.com", "Wrong123!")
	_, errWrong := uc.Login(ctx, testEmail, "Wrong123!")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}
