package logger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}

	t.Run("logging methods do not panic", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewRequestIDContext(context.Background(), "test-request-id")

		assert.NotPanics(t, func() {
			log.Debug(ctx, "debug message", zap.String("key", "value"))
			log.Info(ctx, "info message")
			log.Warn(ctx, "warn message")
			log.Error(ctx, "error message")
			_ = log.Sync()
		})
	})

	t.Run("With creates new logger instance", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)

		newLog := log.With(zap.Int("count", 1))
		assert.NotNil(t, newLog)
		assert.NotSame(t, log, newLog)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrieved, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrieved, err := logger.FromContext(context.Background())
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("error when context has non-logger values", func(t *testing.T) {
		type ctxKeyType struct{}
		ctx := context.WithValue(context.Background(), ctxKeyType{}, "not a logger")

		retrieved, err := logger.FromContext(ctx)
		require.ErrorIs(t, err, logger.ErrLoggerNotFound)
		assert.Nil(t, retrieved)
	})

	t.Run("success with derived context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		type ctxKeyType struct{}
		ctx := logger.NewContext(context.Background(), testLogger)
		derived := context.WithValue(ctx, ctxKeyType{}, "some-value")

		retrieved, err := logger.FromContext(derived)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})
}

func TestInitGlobalLogger(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("initializes global logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		require.NoError(t, logger.InitGlobalLogger(logger.Development))
		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("keeps existing global logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
		second := logger.Log(context.Background())

		assert.Same(t, first, second)
	})
}

func TestLog(t *testing.T) {
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	t.Run("logger from context has priority over global logger", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)
		logger.SetGlobalLogger(global)

		local, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		ctx := logger.NewContext(context.Background(), local)

		assert.Same(t, local, logger.Log(ctx))
		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("returns the same fallback logger when nothing is configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		first := logger.Log(context.Background())
		second := logger.Log(context.Background())

		require.NotNil(t, first)
		assert.Same(t, first, second)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("keeps provided request id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("generates request id when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Len(t, id, 36)
	})

	t.Run("replaces unusable request id", func(t *testing.T) {
		for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("a", logger.MaxRequestIDLength+1)} {
			ctx, id := logger.ContextWithRequestID(context.Background(), bad)

			assert.NotEqual(t, bad, id)
			assert.Len(t, id, 36)
			stored, ok := logger.GetRequestID(ctx)
			assert.True(t, ok)
			assert.Equal(t, id, stored)
		}
	})

	t.Run("missing request id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("WithRequestID tags logger only when id present", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		tagged := log.WithRequestID(logger.NewRequestIDContext(context.Background(), "req-2"))
		assert.NotSame(t, log, tagged)

		untagged := log.WithRequestID(context.Background())
		assert.Same(t, log, untagged)
	})
}
