// Package config loads typed configuration from the environment and an optional .env file.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

const (
	msgLoading        = "loading configuration"
	msgLoaded         = "configuration loaded successfully"
	msgLoadFailed     = "failed to load configuration"
	msgEnvFileMissing = "env file not found, reading process environment only"

	errLoad     = "failed to load configuration"
	errValidate = "invalid configuration"

	attrService = "service"
	attrPath    = "path"
)

// Validator is implemented by configurations that check themselves after
// loading.
type Validator interface {
	Validate() error
}

// Load fills a T from envPath (when the file exists) and the process
// environment. Process variables win over the file. If *T implements
// Validator, Validate runs last.
func Load[T any](ctx context.Context, serviceName, envPath string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoading, zap.String(attrPath, envPath))

	cfg := new(T)
	if err := read(ctx, log, envPath, cfg); err != nil {
		log.Error(ctx, msgLoadFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errLoad, err)
	}

	if v, ok := any(cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			log.Error(ctx, msgLoadFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errValidate, err)
		}
	}

	log.Info(ctx, msgLoaded)
	return cfg, nil
}

func read(ctx context.Context, log *logger.Logger, envPath string, cfg any) error {
	if envPath == "" {
		return cleanenv.ReadEnv(cfg)
	}
	if info, err := os.Stat(envPath); err != nil || info.IsDir() {
		log.Debug(ctx, msgEnvFileMissing, zap.String(attrPath, envPath))
		return cleanenv.ReadEnv(cfg)
	}
	return cleanenv.ReadConfig(envPath, cfg)
}
