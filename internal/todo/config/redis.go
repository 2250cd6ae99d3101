package config

import (
	"time"

	"gotodo/pkg/db/redis"
)

// RedisConfig configures the optional profile cache.
type RedisConfig struct {
	Enabled    bool          `yaml:"enabled" env:"TODO_REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"TODO_REDIS_HOST" env-default:"localhost"`
	Port       int           `yaml:"port" env:"TODO_REDIS_PORT" env-default:"6379"`
	Password   string        `yaml:"password" env:"TODO_REDIS_PASSWORD" env-default:""`
	DB         int           `yaml:"db" env:"TODO_REDIS_DB" env-default:"0"`
	PoolSize   int           `yaml:"pool_size" env:"TODO_REDIS_POOL_SIZE" env-default:"10"`
	ProfileTTL time.Duration `yaml:"profile_ttl" env:"TODO_REDIS_PROFILE_TTL" env-default:"5m"`
	KeyPrefix  string        `yaml:"key_prefix" env:"TODO_REDIS_KEY_PREFIX" env-default:"gotodo:"`
}

// ClientConfig converts the settings into a redis client configuration.
func (r *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  redis.DefaultTimeout,
	}
}
