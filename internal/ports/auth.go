package ports

// Package ports defines interfaces (hexagonal ports) for session, credential,
// and accounting-connection behavior. Implementations live in
// internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenStore holds the delegated accounting credential for a session.
// A bundle is exclusively owned by the session that stored it: Get for any
// other session id never observes it. Put replaces an existing bundle.
// The store performs no network I/O.
type TokenStore interface {
	Get(ctx context.Context, sessionID string) (bundle domainauth.TokenBundle, ok bool, err error)
	Put(ctx context.Context, sessionID string, bundle domainauth.TokenBundle) error
	Clear(ctx context.Context, sessionID string) error
}

// Connector performs the OAuth authorization-code flow against the external
// accounting provider. It never persists tokens and never retries: transient
// failures surface as exchange/refresh errors and the retry decision belongs
// to the caller.
type Connector interface {
	// AuthorizationURL returns the provider authorization URL. Deterministic
	// given static configuration; safe to call without an authenticated
	// session solely to display a connect link.
	AuthorizationURL() string

	// Exchange turns a single-use authorization code into a token bundle.
	// Codes are single-use: retrying with the same code cannot succeed, the
	// caller must restart the authorization flow.
	Exchange(ctx context.Context, code string) (domainauth.TokenBundle, error)

	// Refresh exchanges the bundle's refresh token for a new bundle. A
	// refresh failure means the credential is gone; callers treat it as
	// not-connected and prompt for reconnection.
	Refresh(ctx context.Context, bundle domainauth.TokenBundle) (domainauth.TokenBundle, error)
}
