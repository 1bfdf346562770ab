package service

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/ports"
)

// ConnectionServiceOptions groups dependencies for ConnectionService.
type ConnectionServiceOptions struct {
	Connector ports.Connector
	Tokens    ports.TokenStore
}

// ConnectionService manages the session-scoped link to the accounting
// provider: starting the authorization flow, storing the resulting
// credential, and handing out a usable token to callers.
type ConnectionService struct {
	connector ports.Connector
	tokens    ports.TokenStore

	// refreshGroup coalesces concurrent refreshes per session so the stored
	// bundle is only rewritten by one winner.
	refreshGroup singleflight.Group
}

// NewConnectionService constructs a new ConnectionService.
func NewConnectionService(opts ConnectionServiceOptions) *ConnectionService {
	if opts.Connector == nil {
		panic("ConnectionService requires a connector")
	}
	if opts.Tokens == nil {
		panic("ConnectionService requires a token store")
	}
	return &ConnectionService{
		connector: opts.Connector,
		tokens:    opts.Tokens,
	}
}

// AuthorizationURL returns the provider authorization URL for the connect
// flow. No session is required to compute it.
func (s *ConnectionService) AuthorizationURL() string {
	return s.connector.AuthorizationURL()
}

// CompleteAuthorization exchanges the callback code and stores the resulting
// credential for the session. On failure nothing is stored; the code is
// spent either way, so the caller must restart the flow to retry.
func (s *ConnectionService) CompleteAuthorization(ctx context.Context, sessionID, code string) error {
	if sessionID == "" {
		return apperrors.Unauthenticated("no session")
	}

	bundle, err := s.connector.Exchange(ctx, code)
	if err != nil {
		return err
	}
	if err := s.tokens.Put(ctx, sessionID, bundle); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "store accounting credential")
	}
	return nil
}

// Disconnect drops the session's accounting credential. Disconnecting a
// session that was never connected is a no-op.
func (s *ConnectionService) Disconnect(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.tokens.Clear(ctx, sessionID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear accounting credential")
	}
	return nil
}

// ConnectionStatus describes whether a session holds an accounting credential.
type ConnectionStatus struct {
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Status reports whether the session holds a credential. A held-but-expired
// bundle still counts as connected; the next use will refresh it.
func (s *ConnectionService) Status(ctx context.Context, sessionID string) (ConnectionStatus, error) {
	bundle, ok, err := s.tokens.Get(ctx, sessionID)
	if err != nil {
		return ConnectionStatus{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read accounting credential")
	}
	if !ok {
		return ConnectionStatus{Connected: false}, nil
	}
	expiresAt := bundle.ExpiresAt
	return ConnectionStatus{Connected: true, ExpiresAt: &expiresAt}, nil
}

// ResolveToken returns a usable credential for the session, refreshing an
// expired bundle first. Concurrent callers for the same session share one
// refresh. A failed refresh clears the stored bundle: the credential is gone
// and the user must reconnect.
func (s *ConnectionService) ResolveToken(ctx context.Context, sessionID string) (domainauth.TokenBundle, error) {
	if sessionID == "" {
		return domainauth.TokenBundle{}, apperrors.NotConnected("accounting provider is not connected")
	}

	bundle, ok, err := s.tokens.Get(ctx, sessionID)
	if err != nil {
		return domainauth.TokenBundle{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read accounting credential")
	}
	if !ok {
		return domainauth.TokenBundle{}, apperrors.NotConnected("accounting provider is not connected")
	}
	if !bundle.IsExpired(time.Now()) {
		return bundle, nil
	}

	fresh, err, _ := s.refreshGroup.Do(sessionID, func() (any, error) {
		// Re-read inside the group: a concurrent winner may have already
		// stored a fresh bundle.
		current, ok, err := s.tokens.Get(ctx, sessionID)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "read accounting credential")
		}
		if !ok {
			return nil, apperrors.NotConnected("accounting provider is not connected")
		}
		if !current.IsExpired(time.Now()) {
			return current, nil
		}

		refreshed, err := s.connector.Refresh(ctx, current)
		if err != nil {
			if apperrors.IsRefreshFailed(err) {
				if clearErr := s.tokens.Clear(ctx, sessionID); clearErr != nil {
					return nil, apperrors.Wrap(clearErr, apperrors.ErrCodeInternal, "clear dead accounting credential")
				}
			}
			return nil, err
		}
		if err := s.tokens.Put(ctx, sessionID, refreshed); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "store refreshed credential")
		}
		return refreshed, nil
	})
	if err != nil {
		return domainauth.TokenBundle{}, err
	}
	return fresh.(domainauth.TokenBundle), nil
}
