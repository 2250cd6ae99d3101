package config

import (
	"fmt"
	"strings"
	"time"
)

// HTTPConfig configures the HTTP listener and its edge middleware.
type HTTPConfig struct {
	Host            string        `yaml:"host" env:"TODO_HTTP_HOST" env-default:"0.0.0.0"`
	Port            int           `yaml:"port" env:"TODO_HTTP_PORT" env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"TODO_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"TODO_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	AllowedOrigins  string        `yaml:"allowed_origins" env:"TODO_HTTP_ALLOWED_ORIGINS" env-default:"*"`
	RateLimitMax    int           `yaml:"rate_limit_max" env:"TODO_HTTP_RATE_LIMIT_MAX" env-default:"100"`
	RateLimitWindow time.Duration `yaml:"rate_limit_window" env:"TODO_HTTP_RATE_LIMIT_WINDOW" env-default:"15m"`
}

// GetAddress returns host:port for the listener.
func (h *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// GetAllowedOrigins splits the comma separated origin list.
func (h *HTTPConfig) GetAllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(h.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
