package db_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotodo/internal/todo/config"
	"gotodo/internal/todo/db"
)

func TestMigrationsURL(t *testing.T) {
	t.Run("absolute path", func(t *testing.T) {
		got, err := db.MigrationsURL("/srv/migrations/todo")
		require.NoError(t, err)
		assert.Equal(t, "file:///srv/migrations/todo", got)
	})

	t.Run("relative path is resolved", func(t *testing.T) {
		got, err := db.MigrationsURL("migrations/todo")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "file:///"))
		assert.True(t, strings.HasSuffix(got, filepath.Join("migrations", "todo")))
	})
}

func TestNewFailsOnMissingMigrations(t *testing.T) {
	cfg := &config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "u",
		Password: "p",
		Database: "todo",

		ConnectAttempts: 1,
	}

	database, err := db.New(context.Background(), cfg, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Nil(t, database)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
}
