package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseAccountingEnv(t *testing.T) {
	t.Setenv("ACCOUNTING_CLIENT_ID", "portal-client")
	t.Setenv("ACCOUNTING_CLIENT_SECRET", "super-secret")
	t.Setenv("ACCOUNTING_REDIRECT_URL", "https://app.example.com/api/accounting/callback")
	t.Setenv("ACCOUNTING_DISCOVERY_URL", "https://books.example.com/.well-known/openid-configuration")
	t.Setenv("ACCOUNTING_SCOPE", "accounting:read")
	t.Setenv("ACCOUNTING_API_BASE_URL", "https://books.example.com/api/v1/")
	t.Setenv("ACCOUNTING_API_TIMEOUT", "5s")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expected := AccountingConfig{
		ClientID:     "portal-client",
		ClientSecret: "super-secret",
		RedirectURL:  "https://app.example.com/api/accounting/callback",
		Scope:        "accounting:read",
		DiscoveryURL: "https://books.example.com/.well-known/openid-configuration",
		APIBaseURL:   "https://books.example.com/api/v1",
		APITimeout:   5 * time.Second,
	}

	if !reflect.DeepEqual(cfg.Accounting, expected) {
		t.Fatalf("unexpected accounting configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Accounting)
	}
	if !cfg.Accounting.Configured() {
		t.Fatal("expected accounting config to be considered configured")
	}
}

func TestAccountingConfig_Configured(t *testing.T) {
	tests := []struct {
		name     string
		cfg      AccountingConfig
		expected bool
	}{
		{
			name:     "empty",
			cfg:      AccountingConfig{},
			expected: false,
		},
		{
			name: "discovery only",
			cfg: AccountingConfig{
				ClientID:     "c",
				ClientSecret: "s",
				RedirectURL:  "https://app.example.com/cb",
				DiscoveryURL: "https://idp.example.com/.well-known/openid-configuration",
			},
			expected: true,
		},
		{
			name: "static endpoints",
			cfg: AccountingConfig{
				ClientID:     "c",
				ClientSecret: "s",
				RedirectURL:  "https://app.example.com/cb",
				AuthURL:      "https://idp.example.com/authorize",
				TokenURL:     "https://idp.example.com/token",
			},
			expected: true,
		},
		{
			name: "auth url without token url",
			cfg: AccountingConfig{
				ClientID:     "c",
				ClientSecret: "s",
				RedirectURL:  "https://app.example.com/cb",
				AuthURL:      "https://idp.example.com/authorize",
			},
			expected: false,
		},
		{
			name: "missing secret",
			cfg: AccountingConfig{
				ClientID:     "c",
				RedirectURL:  "https://app.example.com/cb",
				DiscoveryURL: "https://idp.example.com/.well-known/openid-configuration",
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Configured(); got != tt.expected {
				t.Errorf("Configured(): expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	cfg := AuthConfig{SessionTTL: -1, BcryptCost: 0, TokenTTL: 0}
	cfg.Sanitize()

	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("expected session ttl default, got %v", cfg.SessionTTL)
	}
	if cfg.BcryptCost != minBcryptCost {
		t.Errorf("expected bcrypt cost clamped to %d, got %d", minBcryptCost, cfg.BcryptCost)
	}
	if cfg.TokenTTL != 720*time.Hour {
		t.Errorf("expected token ttl default, got %v", cfg.TokenTTL)
	}

	cfg = AuthConfig{SessionTTL: time.Hour, BcryptCost: 99, TokenTTL: time.Hour}
	cfg.Sanitize()

	if cfg.BcryptCost != maxBcryptCost {
		t.Errorf("expected bcrypt cost clamped to %d, got %d", maxBcryptCost, cfg.BcryptCost)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected session ttl preserved, got %v", cfg.SessionTTL)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatal("expected dev mode via NODE_ENV fallback")
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}
