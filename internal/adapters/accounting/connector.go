// Package accounting provides adapters for the external accounting provider:
// the OAuth2 connector for the authorization-code flow and the REST client
// for the provider's API.
package accounting

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

// ConnectorConfig holds configuration for the accounting OAuth connector.
// Either DiscoveryURL or the AuthURL/TokenURL pair must be set; discovery
// wins when both are present.
type ConnectorConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	AuthURL      string
	TokenURL     string
	DiscoveryURL string
	HTTPClient   *http.Client // Optional, defaults to a 30s-timeout client
}

// Connector implements the authorization-code flow against the accounting
// provider. It is stateless: tokens come in and go out as values, and no
// request is ever retried here.
type Connector struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewConnector creates a connector from static endpoints or, when
// DiscoveryURL is set, from the provider's well-known configuration
// (single discovery fetch at startup).
func NewConnector(cfg ConnectorConfig) (*Connector, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	endpoint := oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	if cfg.DiscoveryURL != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
		issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
		issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
		provider, err := gooidc.NewProvider(ctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("accounting provider discovery: %w", err)
		}
		endpoint = provider.Endpoint()
	}
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		return nil, errors.New("auth and token URLs are required when discovery is not configured")
	}

	return &Connector{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint:     endpoint,
		},
		httpClient: httpClient,
	}, nil
}

// AuthorizationURL returns the provider authorization URL. The URL is a pure
// function of static configuration, so repeated calls return the same value.
func (c *Connector) AuthorizationURL() string {
	return c.config.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("response_type", "code"),
	)
}

// Exchange turns an authorization code into a token bundle. Codes are
// single-use at the provider, so a failed exchange is terminal for that code.
func (c *Connector) Exchange(ctx context.Context, code string) (domainauth.TokenBundle, error) {
	if code == "" {
		return domainauth.TokenBundle{}, apperrors.Wrap(errors.New("authorization code is required"),
			apperrors.ErrCodeExchangeFailed, "code exchange failed")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return domainauth.TokenBundle{}, mapOAuthErr(err, apperrors.ErrCodeExchangeFailed, "code exchange failed")
	}
	return bundleFromToken(token), nil
}

// Refresh exchanges the bundle's refresh token for a fresh bundle. Providers
// may rotate the refresh token; when the response omits one, the previous
// refresh token is carried forward.
func (c *Connector) Refresh(ctx context.Context, bundle domainauth.TokenBundle) (domainauth.TokenBundle, error) {
	if bundle.RefreshToken == "" {
		return domainauth.TokenBundle{}, apperrors.Wrap(errors.New("no refresh token held"),
			apperrors.ErrCodeRefreshFailed, "token refresh failed")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	src := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: bundle.RefreshToken})
	token, err := src.Token()
	if err != nil {
		return domainauth.TokenBundle{}, mapOAuthErr(err, apperrors.ErrCodeRefreshFailed, "token refresh failed")
	}

	fresh := bundleFromToken(token)
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = bundle.RefreshToken
	}
	return fresh, nil
}

func bundleFromToken(token *oauth2.Token) domainauth.TokenBundle {
	expiresAt := time.Now().Add(time.Hour)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry
	}
	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return domainauth.TokenBundle{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    tokenType,
		ExpiresAt:    expiresAt,
	}
}

func mapOAuthErr(err error, code apperrors.ErrorCode, message string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, message)
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, message)
	}
	return apperrors.Wrap(err, code, message)
}
