package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// source
	"go.uber.org/zap"

	"gotodo/pkg/logger"
)

// Migration error messages.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadSchemaVersion       = "failed to read schema version"
)

// ErrDirtySchema is returned when a previous migration stopped half way and
// the schema needs manual repair before the service can start.
var ErrDirtySchema = errors.New("database schema is dirty")

const (
	logSchemaVersion   = "current schema version"
	logSchemaUpToDate  = "schema up to date"
	logMigrationClose  = "closing migration instance"
	logMigrationCancel = "migration canceled, stopping after the current step"
)

// MigrateDSN applies every pending up migration found at migrationsPath.
// Cancelling ctx stops after the migration in progress.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	log := logger.Log(ctx).With(zap.String("path", migrationsPath))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn(ctx, logMigrationClose, zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	before, err := schemaVersion(m)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Warn(ctx, logMigrationCancel)
			m.GracefulStop <- true
		case <-done:
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info(ctx, logSchemaUpToDate, zap.Uint("version", before))
			return nil
		}
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	after, err := schemaVersion(m)
	if err != nil {
		return err
	}

	log.Info(ctx, LogMigrationsApplied, zap.Uint("from_version", before), zap.Uint("to_version", after))
	return nil
}

// schemaVersion reports 0 for an empty database and fails on a dirty one.
func schemaVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("%s: %w", ErrReadSchemaVersion, err)
	case dirty:
		return version, fmt.Errorf("%w: version %d", ErrDirtySchema, version)
	default:
		return version, nil
	}
}
