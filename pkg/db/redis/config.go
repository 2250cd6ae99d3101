// Package redis provides a thin Redis client shared by cache adapters.
package redis

import (
	"errors"
	"net"
	"strconv"
	"time"
)

// Default connection settings.
const (
	DefaultHost     = "localhost"
	DefaultPort     = 6379
	DefaultPoolSize = 10
	DefaultTimeout  = 5 * time.Second
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid redis config")

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// DefaultConfig returns a Config pointing at a local Redis.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Addr returns the dial address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks the fields NewClient cannot default.
func (c *Config) Validate() error {
	switch {
	case c.Port < 0 || c.Port > 65535:
		return errors.Join(ErrInvalidConfig, errors.New("port out of range"))
	case c.DB < 0:
		return errors.Join(ErrInvalidConfig, errors.New("negative db index"))
	}
	return nil
}

// applyDefaults fills zero values.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.PoolSize <= 0 {
		c.PoolSize = DefaultPoolSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}
