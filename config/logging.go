package config

import "strings"

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format selects the handler: "json" or "text".
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Sanitize normalizes logging configuration values.
func (l *LoggingConfig) Sanitize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		l.Level = "info"
	}

	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format != "text" {
		l.Format = "json"
	}
}
