package config

import (
	"strings"
	"time"
)

// AccountingConfig contains configuration for the external accounting
// provider: the OAuth authorization endpoints used to connect an account and
// the REST API the portal reads from once connected.
//
// Either DiscoveryURL or the AuthURL/TokenURL pair must be set.
type AccountingConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/api/accounting/callback"`
	Scope        string `env:"SCOPE"         envDefault:"accounting:read accounting:write"`
	AuthURL      string `env:"AUTH_URL"`
	TokenURL     string `env:"TOKEN_URL"`
	DiscoveryURL string `env:"DISCOVERY_URL"`

	// APIBaseURL is the root of the provider's REST API.
	APIBaseURL string `env:"API_BASE_URL"`

	// APITimeout bounds each individual request to the provider's API.
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to accounting configuration values.
func (c *AccountingConfig) Sanitize() {
	c.ClientID = strings.TrimSpace(c.ClientID)
	c.RedirectURL = strings.TrimSpace(c.RedirectURL)
	c.AuthURL = strings.TrimSpace(c.AuthURL)
	c.TokenURL = strings.TrimSpace(c.TokenURL)
	c.DiscoveryURL = strings.TrimSpace(c.DiscoveryURL)
	c.APIBaseURL = strings.TrimSpace(strings.TrimSuffix(c.APIBaseURL, "/"))
	if c.APITimeout <= 0 {
		c.APITimeout = 10 * time.Second
	}
}

// Configured reports whether enough is set to build the OAuth connector.
func (c *AccountingConfig) Configured() bool {
	if c.ClientID == "" || c.ClientSecret == "" || c.RedirectURL == "" {
		return false
	}
	return c.DiscoveryURL != "" || (c.AuthURL != "" && c.TokenURL != "")
}
