package config

import "time"

// AuthConfig groups session and password hashing configuration.
type AuthConfig struct {
	// SessionTTL is how long a login stays valid without re-authenticating.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// BcryptCost is the bcrypt work factor for password hashing.
	// Zero uses the library default.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.BcryptCost < 0 {
		a.BcryptCost = 0
	}
}
