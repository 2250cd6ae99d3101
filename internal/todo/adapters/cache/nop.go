package cache

import (
	"context"
	"time"

	"gotodo/internal/todo/ports/cache"
)

// NopCache never stores anything. It stands in when Redis is disabled.
type NopCache struct{}

// NewNopCache returns a cache that always misses.
func NewNopCache() cache.Cache {
	return NopCache{}
}

// Get always misses.
func (NopCache) Get(context.Context, string) (string, error) { return "", cache.ErrCacheMiss }

// Set discards the value.
func (NopCache) Set(context.Context, string, string, time.Duration) error { return nil }

// Close does nothing.
func (NopCache) Close() error { return nil }
