package cache

import (
	"context"
	"errors"
	"time"

	"gotodo/internal/todo/ports/cache"
	"gotodo/pkg/resilience"
)

// GuardedCache skips the wrapped cache while its breaker is open. An open
// breaker reads as a miss and drops writes, so callers fall through to the
// store without waiting on a dead backend.
type GuardedCache struct {
	inner   cache.Cache
	breaker *resilience.CircuitBreaker
}

// NewGuardedCache wraps inner with breaker.
func NewGuardedCache(inner cache.Cache, breaker *resilience.CircuitBreaker) cache.Cache {
	return &GuardedCache{inner: inner, breaker: breaker}
}

// Get returns cache.ErrCacheMiss for an absent key or an open breaker.
func (g *GuardedCache) Get(ctx context.Context, key string) (string, error) {
	var value string
	var miss bool

	err := g.breaker.Execute(ctx, func() error {
		v, err := g.inner.Get(ctx, key)
		if errors.Is(err, cache.ErrCacheMiss) {
			miss = true
			return nil
		}
		value = v
		return err
	})

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen), miss:
		return "", cache.ErrCacheMiss
	case err != nil:
		return "", err
	default:
		return value, nil
	}
}

// Set writes through unless the breaker is open.
func (g *GuardedCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return g.guard(ctx, func() error { return g.inner.Set(ctx, key, value, ttl) })
}

// Close closes the wrapped cache.
func (g *GuardedCache) Close() error {
	return g.inner.Close()
}

func (g *GuardedCache) guard(ctx context.Context, fn func() error) error {
	err := g.breaker.Execute(ctx, fn)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil
	}
	return err
}
