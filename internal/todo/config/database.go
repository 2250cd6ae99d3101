package config

import (
	"fmt"
	"time"
)

// PostgresConfig holds the database connection settings.
type PostgresConfig struct {
	Host           string        `yaml:"host" env:"TODO_POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"TODO_POSTGRES_PORT" env-default:"5432"`
	User           string        `yaml:"user" env:"TODO_POSTGRES_USER" env-default:"postgres"`
	Password       string        `yaml:"password" env:"TODO_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string        `yaml:"database" env:"TODO_POSTGRES_DB" env-default:"todo"`
	MinConn        int           `yaml:"min_conn" env:"TODO_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int           `yaml:"max_conn" env:"TODO_POSTGRES_MAX_CONN" env-default:"10"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"TODO_POSTGRES_CONNECT_TIMEOUT" env-default:"7s"`

	// ConnectAttempts bounds the startup retries for migrations and the pool.
	ConnectAttempts int `yaml:"connect_attempts" env:"TODO_POSTGRES_CONNECT_ATTEMPTS" env-default:"5"`
}

// GetDSN returns the keyword/value connection string for pgx.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL returns the URL form used by migrations.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
