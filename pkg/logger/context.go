package logger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger package errors.
var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

var (
	global   atomic.Pointer[Logger]
	fallback = newFallbackLogger()
)

// newFallbackLogger logs warnings and above to stderr in JSON until a real
// logger is installed.
func newFallbackLogger() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}
	return &Logger{l: z.With(zap.String("logger", "fallback"))}
}

// NewContext returns a context carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored by NewContext.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, ErrLoggerNotFound
	}
	if l, ok := ctx.Value(loggerKey).(*Logger); ok && l != nil {
		return l, nil
	}
	return nil, ErrLoggerNotFound
}

// InitGlobalLogger installs a global logger unless one is already set.
func InitGlobalLogger(env Environment) error {
	return InitGlobalLoggerWithLevel(env, "")
}

// InitGlobalLoggerWithLevel is InitGlobalLogger with an explicit level.
func InitGlobalLoggerWithLevel(env Environment, level string) error {
	if global.Load() != nil {
		return nil
	}

	l, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}

	global.CompareAndSwap(nil, l)
	return nil
}

// SetGlobalLogger replaces the global logger. nil clears it.
func SetGlobalLogger(logger *Logger) {
	global.Store(logger)
}

// Log returns the logger from ctx, else the global logger, else the fallback.
func Log(ctx context.Context) *Logger {
	if l, err := FromContext(ctx); err == nil {
		return l
	}
	if l := global.Load(); l != nil {
		return l
	}
	return fallback
}
