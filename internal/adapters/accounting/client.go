package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

// maxErrorBodyBytes bounds how much of an error response body is read for
// diagnostics.
const maxErrorBodyBytes = 4 << 10

// ClientConfig holds configuration for the accounting REST client.
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration // per-call bound, defaults to 10s
	HTTPClient *http.Client  // Optional, defaults to http.DefaultClient semantics
}

// Client consumes the accounting provider's REST API. Every call carries the
// bearer credential it is handed and is bounded by the configured timeout.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a REST client for the accounting API.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:    base,
		timeout:    timeout,
		httpClient: httpClient,
	}, nil
}

// Projects fetches the project records visible to the connected account.
func (c *Client) Projects(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalProject, error) {
	var out []model.ExternalProject
	if err := c.get(ctx, bundle, "/projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Invoices fetches the invoice records visible to the connected account.
func (c *Client) Invoices(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalInvoice, error) {
	var out []model.ExternalInvoice
	if err := c.get(ctx, bundle, "/invoices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Client fetches a single client record by the external system's id.
func (c *Client) Client(ctx context.Context, bundle domainauth.TokenBundle, externalID string) (*model.ExternalClient, error) {
	if externalID == "" {
		return nil, apperrors.Validation("external client id is required")
	}
	var out model.ExternalClient
	if err := c.get(ctx, bundle, "/clients/"+url.PathEscape(externalID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateClient creates a client record in the accounting system.
func (c *Client) CreateClient(ctx context.Context, bundle domainauth.TokenBundle, req model.CreateClientRequest) (*model.ExternalClient, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternalCreate, "encode client request")
	}

	var out model.ExternalClient
	if err := c.do(ctx, bundle, http.MethodPost, "/clients", body, &out, apperrors.ErrCodeExternalCreate); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, bundle domainauth.TokenBundle, path string, out any) error {
	return c.do(ctx, bundle, http.MethodGet, path, nil, out, apperrors.ErrCodeExternalFetch)
}

func (c *Client) do(ctx context.Context, bundle domainauth.TokenBundle, method, path string, body []byte, out any, failCode apperrors.ErrorCode) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrapf(err, failCode, "build %s %s request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", bearerHeader(bundle))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapOAuthErr(err, failCode, fmt.Sprintf("accounting %s %s", method, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		err := fmt.Errorf("accounting %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
		if resp.StatusCode == http.StatusNotFound {
			return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "accounting record not found")
		}
		return apperrors.Wrapf(err, failCode, "accounting %s %s failed", method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, failCode, "decode accounting %s %s response", method, path)
	}
	return nil
}

func bearerHeader(bundle domainauth.TokenBundle) string {
	tokenType := bundle.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + bundle.AccessToken
}
