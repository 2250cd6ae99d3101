// Package db prepares the todo database: migrations first, then the pool.
package db

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gotodo/internal/todo/config"
	"gotodo/pkg/db/postgres"
	"gotodo/pkg/logger"
	"gotodo/pkg/resilience"
)

// Log messages.
const (
	LogDBInitializing    = "initializing todo database"
	LogDBInitialized     = "todo database initialized successfully"
	LogMigrationStarting = "starting todo database migrations"
)

// Error messages.
const (
	ErrDBMigrations = "failed to apply todo database migrations"
	ErrDBConnection = "failed to connect to todo database"
	ErrGetPath      = "failed to get path"
)

const (
	retryName         = "postgres startup"
	connectBackoff    = 500 * time.Millisecond
	maxConnectBackoff = 5 * time.Second
)

// DB is the todo service database handle.
type DB struct {
	database *postgres.Database
}

// New applies migrations from migrationsDir and opens the pool.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn),
		zap.Duration("connect_timeout", cfg.ConnectTimeout),
		zap.Int("connect_attempts", cfg.ConnectAttempts))

	migrationsPath, err := MigrationsURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	retry := resilience.NewRetry(retryName, resilience.RetryConfig{
		MaxAttempts:    cfg.ConnectAttempts,
		InitialBackoff: connectBackoff,
		MaxBackoff:     maxConnectBackoff,
		BackoffFactor:  2,
	})

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	err = retry.Execute(ctx, func(ctx context.Context) error {
		return postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	var database *postgres.Database
	err = retry.Execute(ctx, func(ctx context.Context) error {
		opened, err := postgres.New(ctx, cfg.GetDSN(), postgres.Options{
			MinConn:        cfg.MinConn,
			MaxConn:        cfg.MaxConn,
			ConnectTimeout: cfg.ConnectTimeout,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		database = opened
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// MigrationsURL turns a directory into a file:// source URL.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + absPath, nil
}

// Close closes the pool.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool returns the connection pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
