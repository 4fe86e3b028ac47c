package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Session and password hashing configuration
//   - database.go: Database and session-store configuration
//   - http.go: HTTP server configuration
//   - payments.go: Stripe configuration
//   - storage.go: S3 object storage configuration
type AppConfig struct {
	// IsDev controls development mode behavior (relaxed cookies, seed data).
	// Set DEV=true or APP_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth     AuthConfig
	Postgres DBConfig      `envPrefix:"DB_"`
	Redis    RedisConfig   `envPrefix:"REDIS_"`
	HTTP     HTTPConfig
	Stripe   StripeConfig  `envPrefix:"STRIPE_"`
	Storage  StorageConfig `envPrefix:"S3_"`
	Logging  LoggingConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.Logging.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and APP_ENV environment variables.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		appEnv := strings.ToLower(os.Getenv("APP_ENV"))
		c.IsDev = appEnv == "development" || appEnv == "dev"
	}
}
