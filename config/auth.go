package config

import "time"

const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// AuthConfig groups session and password-hashing configuration.
type AuthConfig struct {
	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// TokenTTL bounds how long a delegated accounting credential is retained
	// in the credential store, independent of the token's own expiry.
	TokenTTL time.Duration `env:"ACCOUNTING_TOKEN_TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to auth configuration values.
func (c *AuthConfig) Sanitize() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 12 * time.Hour
	}
	if c.BcryptCost < minBcryptCost {
		c.BcryptCost = minBcryptCost
	}
	if c.BcryptCost > maxBcryptCost {
		c.BcryptCost = maxBcryptCost
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 720 * time.Hour
	}
}
