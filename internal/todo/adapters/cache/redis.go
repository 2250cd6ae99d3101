// Package cache implements the cache port with Redis and a no-op fallback.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gotodo/internal/todo/ports/cache"
	"gotodo/pkg/db/redis"
	"gotodo/pkg/logger"
)

const (
	opGet    = "cache.get"
	opSet    = "cache.set"

	errMsgRead   = "reading cached entry"
	errMsgWrite  = "writing cached entry"
	errMsgClose  = "closing redis client"
	logBadExpiry = "negative ttl, using default"
)

// RedisCache implements cache.Cache on a Redis client.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
	prefix     string
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithKeyPrefix namespaces every key, e.g. "gotodo:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisCache) { c.prefix = prefix }
}

// NewRedisCache wraps client. Set with a zero ttl uses defaultTTL.
func NewRedisCache(client *redis.Client, defaultTTL time.Duration, opts ...RedisOption) cache.Cache {
	c := &RedisCache{client: client, defaultTTL: defaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

func (c *RedisCache) logFor(ctx context.Context, op, key string) *logger.Logger {
	return logger.Log(ctx).With(zap.String("method", op), zap.String("key", c.key(key)))
}

// Get returns cache.ErrCacheMiss for an absent or expired key.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, c.key(key))
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, redis.ErrNil):
		return "", cache.ErrCacheMiss
	}

	c.logFor(ctx, opGet, key).Error(ctx, errMsgRead, zap.Error(err))
	return "", fmt.Errorf("%s: %w", errMsgRead, err)
}

// Set stores value under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if ttl < 0 {
		c.logFor(ctx, opSet, key).Warn(ctx, logBadExpiry, zap.Duration("ttl", ttl))
		ttl = 0
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, c.key(key), value, ttl); err != nil {
		c.logFor(ctx, opSet, key).Error(ctx, errMsgWrite, zap.Error(err))
		return fmt.Errorf("%s: %w", errMsgWrite, err)
	}
	return nil
}

// Close closes the client.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", errMsgClose, err)
	}
	return nil
}
