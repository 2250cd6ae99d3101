package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/todo/adapters/services"
	domainservices "gotodo/internal/todo/domain/services"
	"gotodo/pkg/logger"
)

const (
	testSecret = "test-secret-key-12345" //nolint:gosec
	testUserID = "7f1c9a52-3b8e-4d6a-9c2f-0e1d2c3b4a59"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestNewJWTEmptySecret(t *testing.T) {
	service, err := services.NewJWT("", 15*time.Minute)
	assert.ErrorIs(t, err, domainservices.ErrEmptySecretKey)
	assert.Nil(t, service)
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := newTestContext(t)

	service, err := services.NewJWT(testSecret, 15*time.Minute)
	require.NoError(t, err)

	token, expiresAt, err := service.GenerateAccessToken(ctx, testUserID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	userID, err := service.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)

	claims := &services.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testUserID, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
}

func TestValidateExpiryBoundary(t *testing.T) {
	ctx := newTestContext(t)

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute
	clock := &fakeClock{now: issuedAt}

	service, err := services.NewJWT(testSecret, ttl, services.WithClock(clock.Now))
	require.NoError(t, err)

	token, expiresAt, err := service.GenerateAccessToken(ctx, testUserID)
	require.NoError(t, err)
	require.Equal(t, issuedAt.Add(ttl), expiresAt)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "one second before expiry", now: expiresAt.Add(-time.Second)},
		{name: "at expiry", now: expiresAt},
		{name: "within the expiry second", now: expiresAt.Add(999 * time.Millisecond)},
		{name: "one second after expiry", now: expiresAt.Add(time.Second), wantErr: domainservices.ErrExpiredJWTToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = tt.now
			userID, err := service.ValidateAccessToken(ctx, token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.NotErrorIs(t, err, domainservices.ErrInvalidJWTToken)
				assert.Empty(t, userID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testUserID, userID)
		})
	}
}

func TestValidateInvalidTokens(t *testing.T) {
	ctx := newTestContext(t)

	service, err := services.NewJWT(testSecret, 15*time.Minute)
	require.NoError(t, err)

	other, err := services.NewJWT("another-secret", 15*time.Minute)
	require.NoError(t, err)
	foreignToken, _, err := other.GenerateAccessToken(ctx, testUserID)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, services.Claims{
		UserID: testUserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	emptyUserToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		UserID: testUserID,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":         "invalid.token.format",
		"empty":           "",
		"wrong signature": foreignToken,
		"none algorithm":  noneToken,
		"empty user id":   emptyUserToken,
		"missing exp":     noExpToken,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			userID, err := service.ValidateAccessToken(ctx, token)
			assert.ErrorIs(t, err, domainservices.ErrInvalidJWTToken)
			assert.NotErrorIs(t, err, domainservices.ErrExpiredJWTToken)
			assert.Empty(t, userID)
		})
	}
}

func TestServiceFactory(t *testing.T) {
	_, err := services.NewServiceFactory("", time.Minute, 10)
	assert.ErrorIs(t, err, domainservices.ErrEmptySecretKey)

	factory, err := services.NewServiceFactory(testSecret, time.Minute, 4)
	require.NoError(t, err)
	assert.NotNil(t, factory.PasswordService())
	assert.NotNil(t, factory.TokenService())
}
