package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/copperline/bizportal/internal/core"
	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/ports"
)

// DefaultSessionTTL is used when no session lifetime is configured.
const DefaultSessionTTL = 12 * time.Hour

// AuthServiceConfig carries tunables for AuthService.
type AuthServiceConfig struct {
	SessionTTL time.Duration
	BcryptCost int
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Principals core.PrincipalRepository
	Sessions   ports.SessionStore
	Tokens     ports.TokenStore
	Config     AuthServiceConfig
}

// AuthService handles registration, local login, session lifecycle, and
// admin-driven role transitions.
type AuthService struct {
	principals core.PrincipalRepository
	sessions   ports.SessionStore
	tokens     ports.TokenStore
	sessionTTL time.Duration
	bcryptCost int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Principals == nil {
		panic("AuthService requires a principal repository")
	}
	if opts.Sessions == nil {
		panic("AuthService requires a session store")
	}
	ttl := opts.Config.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	cost := opts.Config.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		principals: opts.Principals,
		sessions:   opts.Sessions,
		tokens:     opts.Tokens,
		sessionTTL: ttl,
		bcryptCost: cost,
	}
}

// Register creates a new principal with the pending role. The account cannot
// reach customer or admin capabilities until an admin promotes it.
func (s *AuthService) Register(ctx context.Context, req model.CreatePrincipalRequest) (*model.Principal, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	return s.principals.Create(ctx, core.CreatePrincipalParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domainauth.RolePending,
	})
}

// Login verifies credentials and creates a session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domainauth.Session, error) {
	if username == "" || password == "" {
		return nil, apperrors.Unauthenticated("invalid username or password")
	}

	principal, err := s.principals.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthenticated("invalid username or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthenticated("invalid username or password")
	}

	identity := principal.ToDomain()
	session := domainauth.Session{
		ID:        uuid.NewString(),
		Principal: &identity,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	return &session, nil
}

// GetSession retrieves a session by ID, cleaning up expired ones. The
// accounting credential is session-scoped, so every cleanup path drops it
// alongside the session, including sessions that already expired out of the
// store on their own.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthenticated("no session")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.dropCredential(ctx, sessionID)
		return nil, apperrors.Unauthenticated("no session")
	}

	if time.Now().After(session.ExpiresAt) {
		s.dropCredential(ctx, sessionID)
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, apperrors.Wrap(deleteErr, apperrors.ErrCodeInternal, "delete expired session")
		}
		return nil, apperrors.Unauthenticated("session expired")
	}

	return &session, nil
}

// dropCredential removes the session's accounting credential, best effort.
// The caller is already rejecting the session; a failed clear must not mask
// that outcome, and a retry happens naturally on the next request.
func (s *AuthService) dropCredential(ctx context.Context, sessionID string) {
	if s.tokens == nil {
		return
	}
	_ = s.tokens.Clear(ctx, sessionID)
}

// Logout removes the session and any delegated accounting credential it held.
// The credential is session-scoped, so it must not outlive the session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if s.tokens != nil {
		if err := s.tokens.Clear(ctx, sessionID); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "clear accounting credential")
		}
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}
	return nil
}

// UpdateRole applies an admin-driven role transition to a principal.
func (s *AuthService) UpdateRole(ctx context.Context, principalID string, req model.UpdateRoleRequest) (*model.Principal, error) {
	if principalID == "" {
		return nil, apperrors.Validation("principal id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.principals.UpdateRole(ctx, principalID, req)
}

// GetPrincipal retrieves a principal by ID.
func (s *AuthService) GetPrincipal(ctx context.Context, principalID string) (*model.Principal, error) {
	if principalID == "" {
		return nil, apperrors.Validation("principal id is required")
	}
	return s.principals.GetByID(ctx, principalID)
}

// ListPrincipals retrieves principals with pagination.
func (s *AuthService) ListPrincipals(ctx context.Context, limit, offset int) ([]*model.Principal, error) {
	return s.principals.List(ctx, limit, offset)
}
