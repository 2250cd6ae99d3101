package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

const (
	logConnecting = "connecting to Redis"
	logConnected  = "successfully connected to Redis"
	errConnect    = "failed to connect to Redis"
)

// ErrNil is returned by Get when the key does not exist.
var ErrNil = redis.Nil

// Client wraps a go-redis client.
type Client struct {
	client *redis.Client
}

// NewClient connects to Redis and pings it. Zero fields in cfg take the
// package defaults; cfg itself is not modified.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	settings := *cfg
	settings.applyDefaults()

	log := logger.Log(ctx)
	log.Info(ctx, logConnecting, zap.String("addr", settings.Addr()), zap.Int("db", settings.DB))

	rdb := redis.NewClient(&redis.Options{
		Addr:         settings.Addr(),
		Password:     settings.Password,
		DB:           settings.DB,
		PoolSize:     settings.PoolSize,
		DialTimeout:  settings.Timeout,
		ReadTimeout:  settings.Timeout,
		WriteTimeout: settings.Timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, errConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errConnect, err)
	}

	log.Info(ctx, logConnected)
	return &Client{client: rdb}, nil
}

// Get returns the value stored at key.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

// Set stores value at key with ttl.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Ping checks the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.client.Close()
}
