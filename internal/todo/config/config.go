// Package config holds the todo service configuration.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "gotodo/pkg/config"
	"gotodo/pkg/logger"
)

// Log and error messages.
const (
	LogLoadingConfig    = "loading todo service configuration"
	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"

	serviceName = "todo"
)

// DefaultEnvFile is read when present; process variables take precedence.
const DefaultEnvFile = ".env"

// Config is the full service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// ErrInvalidPoolBounds is returned when the Postgres pool limits contradict.
var ErrInvalidPoolBounds = errors.New("postgres min_conn exceeds max_conn")

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if c.Postgres.MinConn > c.Postgres.MaxConn {
		return fmt.Errorf("%w: %d > %d", ErrInvalidPoolBounds, c.Postgres.MinConn, c.Postgres.MaxConn)
	}
	if c.Redis.Enabled {
		if err := c.Redis.ClientConfig().Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the configuration from the environment and DefaultEnvFile.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, DefaultEnvFile)
}

// LoadFrom reads the configuration from the environment and envPath.
func LoadFrom(ctx context.Context, envPath string) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	cfg, err := pkgconfig.Load[Config](ctx, serviceName, envPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Strings("allowed_origins", cfg.HTTP.GetAllowedOrigins()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Int("postgres_min_conn", cfg.Postgres.MinConn),
		zap.Int("postgres_max_conn", cfg.Postgres.MaxConn),
		zap.Duration("access_token_ttl", cfg.JWT.GetAccessTokenTTL()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
