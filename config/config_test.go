package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "inr", cfg.Stripe.Currency)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.IsDev)
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("S3_BUCKET", "plantflix-staging")
	t.Setenv("SESSION_TTL", "1h")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, "plantflix-staging", cfg.Storage.Bucket)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		HTTP:    HTTPConfig{ReadTimeout: -1, WriteTimeout: 0},
		Auth:    AuthConfig{SessionTTL: -time.Minute, BcryptCost: -3},
		Logging: LoggingConfig{Level: "VERBOSE", Format: "yaml"},
	}
	cfg.Sanitize()

	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 0, cfg.Auth.BcryptCost)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
