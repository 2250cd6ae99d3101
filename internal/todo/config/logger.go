package config

import "gotodo/pkg/logger"

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"TODO_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"TODO_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment maps Mode to a logger environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
