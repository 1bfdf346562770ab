package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/copperline/bizportal/config"
	"github.com/copperline/bizportal/internal/adapters/accounting"
)

// BuildConnector creates the OAuth connector for the accounting provider.
// Returns nil (no error) when the provider is not configured, so development
// environments can run without one.
func BuildConnector(cfg config.AccountingConfig, logger *slog.Logger) (*accounting.Connector, error) {
	if !cfg.Configured() {
		if logger != nil {
			logger.Warn("accounting provider not configured; connection endpoints disabled")
		}
		return nil, nil
	}

	connector, err := accounting.NewConnector(accounting.ConnectorConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scope:        cfg.Scope,
		AuthURL:      cfg.AuthURL,
		TokenURL:     cfg.TokenURL,
		DiscoveryURL: cfg.DiscoveryURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create accounting connector: %w", err)
	}
	return connector, nil
}

// BuildAccountingClient creates the REST client for the accounting provider's API.
func BuildAccountingClient(cfg config.AccountingConfig, logger *slog.Logger) (*accounting.Client, error) {
	if cfg.APIBaseURL == "" {
		if logger != nil {
			logger.Warn("accounting API base URL not configured; sync endpoints disabled")
		}
		return nil, nil
	}

	client, err := accounting.NewClient(accounting.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create accounting client: %w", err)
	}
	return client, nil
}
