package redis_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/pkg/db/redis"
)

func newTestConfig(t *testing.T, mr *miniredis.Miniredis) *redis.Config {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = mr.Host()
	cfg.Port = port
	return cfg
}

func TestClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	client, err := redis.NewClient(ctx, newTestConfig(t, mr))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.Set(ctx, "k", "v", time.Minute))
	got, err := client.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	mr.FastForward(2 * time.Minute)
	_, err = client.Get(ctx, "k")
	assert.True(t, errors.Is(err, redis.ErrNil))

	require.NoError(t, client.Set(ctx, "a", "1", 0))
	assert.True(t, mr.Exists("a"))

	assert.NoError(t, client.Ping(ctx))
}

func TestNewClientUnreachable(t *testing.T) {
	cfg := redis.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.Timeout = 200 * time.Millisecond

	client, err := redis.NewClient(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, client)
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := redis.DefaultConfig()
		assert.Equal(t, "localhost:6379", cfg.Addr())
		assert.Equal(t, redis.DefaultPoolSize, cfg.PoolSize)
		assert.Equal(t, redis.DefaultTimeout, cfg.Timeout)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("ipv6 host", func(t *testing.T) {
		cfg := &redis.Config{Host: "::1", Port: 6380}
		assert.Equal(t, "[::1]:6380", cfg.Addr())
	})

	t.Run("rejects bad port", func(t *testing.T) {
		cfg := &redis.Config{Port: 70000}
		assert.ErrorIs(t, cfg.Validate(), redis.ErrInvalidConfig)

		client, err := redis.NewClient(context.Background(), cfg)
		require.ErrorIs(t, err, redis.ErrInvalidConfig)
		assert.Nil(t, client)
	})

	t.Run("rejects negative db", func(t *testing.T) {
		cfg := &redis.Config{DB: -1}
		assert.ErrorIs(t, cfg.Validate(), redis.ErrInvalidConfig)
	})
}
