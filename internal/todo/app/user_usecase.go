package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gotodo/internal/todo/domain/entities"
	"gotodo/internal/todo/ports/api"
	"gotodo/internal/todo/ports/cache"
	"gotodo/internal/todo/ports/repositories"
	"gotodo/pkg/logger"
)

const (
	methodGetUserProfile = "GetUserProfile"

	msgRequestingProfile   = "requesting user profile"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgProfileRetrieved    = "user profile successfully retrieved"
	msgProfileFromCache    = "user profile served from cache"
	msgProfileNotFound     = "user from token no longer exists"
	msgCacheReadFailed     = "profile cache read failed"
	msgCacheWriteFailed    = "profile cache write failed"

	msgErrFindingUserByID = "failed to find user by ID"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingProfile  = "fetching user profile"

	profileKeyPrefix = "profile:"
)

// cachedProfile is the cached projection of a user. It never holds the hash.
type cachedProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserUseCaseImpl implements api.UserUseCase with a read-through cache.
type UserUseCaseImpl struct {
	userRepo   repositories.UserRepository
	cache      cache.Cache
	profileTTL time.Duration
}

// NewUserUseCase wires the profile use case. Pass a no-op cache to disable caching.
func NewUserUseCase(userRepo repositories.UserRepository, profileCache cache.Cache, profileTTL time.Duration) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo:   userRepo,
		cache:      profileCache,
		profileTTL: profileTTL,
	}
}

// ProfileCacheKey returns the cache key for userID.
func ProfileCacheKey(userID string) string {
	return profileKeyPrefix + userID
}

// GetUserProfile returns the user without its password hash.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetUserProfile), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingProfile)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	key := ProfileCacheKey(userID)
	if user, ok := u.fromCache(ctx, log, key); ok {
		log.Debug(ctx, msgProfileFromCache)
		return user, nil
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgProfileNotFound)
		} else {
			log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFetchingProfile, err)
	}

	profile := &entities.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	u.toCache(ctx, log, key, profile)

	log.Info(ctx, msgProfileRetrieved)
	return profile, nil
}

func (u *UserUseCaseImpl) fromCache(ctx context.Context, log *logger.Logger, key string) (*entities.User, bool) {
	raw, err := u.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
		}
		return nil, false
	}

	var p cachedProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Warn(ctx, msgCacheReadFailed, zap.Error(err))
		return nil, false
	}

	return &entities.User{ID: p.ID, Name: p.Name, Email: p.Email, CreatedAt: p.CreatedAt}, true
}

func (u *UserUseCaseImpl) toCache(ctx context.Context, log *logger.Logger, key string, user *entities.User) {
	raw, err := json.Marshal(cachedProfile{ID: user.ID, Name: user.Name, Email: user.Email, CreatedAt: user.CreatedAt})
	if err != nil {
		log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
		return
	}
	if err := u.cache.Set(ctx, key, string(raw), u.profileTTL); err != nil {
		log.Warn(ctx, msgCacheWriteFailed, zap.Error(err))
	}
}
