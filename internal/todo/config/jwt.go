package config

import "time"

const defaultAccessTokenTTL = 15 * time.Minute

// JWTConfig configures token signing and password hashing.
type JWTConfig struct {
	SecretKey      string `yaml:"secret_key" env:"TODO_JWT_SECRET_KEY" env-required:"true"`
	AccessTokenTTL string `yaml:"access_token_ttl" env:"TODO_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	BCryptCost     int    `yaml:"bcrypt_cost" env:"TODO_JWT_BCRYPT_COST" env-default:"10"`
}

// GetAccessTokenTTL parses AccessTokenTTL, falling back to 15 minutes.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil || duration <= 0 {
		return defaultAccessTokenTTL
	}
	return duration
}
