package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
)

const (
	maxUsernameLen = 100
	minPasswordLen = 10
	maxPasswordLen = 128
)

// Principal is the persisted user record behind a domain principal.
// PasswordHash never leaves the data/service layers; it is excluded from JSON.
type Principal struct {
	ID               string          `json:"id"                           db:"id"`
	Username         string          `json:"username"                     db:"username"`
	Email            string          `json:"email"                        db:"email"`
	PasswordHash     string          `json:"-"                            db:"password_hash"`
	Role             domainauth.Role `json:"role"                         db:"role"`
	ExternalClientID *string         `json:"external_client_id,omitempty" db:"external_client_id"`
	CreatedAt        time.Time       `json:"created_at"                   db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"                   db:"updated_at"`
}

// ToDomain converts the record into the session-facing principal shape.
func (p *Principal) ToDomain() domainauth.Principal {
	return domainauth.Principal{
		ID:               p.ID,
		Username:         p.Username,
		Email:            p.Email,
		Role:             p.Role,
		ExternalClientID: p.ExternalClientID,
	}
}

// CreatePrincipalRequest represents parameters to register a principal.
// New principals always start with the pending role; only an admin can
// promote them.
type CreatePrincipalRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates CreatePrincipalRequest.
func (r *CreatePrincipalRequest) Validate() error {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		return errors.New("username is required and cannot be empty")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return errors.New("username cannot exceed 100 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email is not a valid address")
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLen {
		return errors.New("password must be at least 10 characters")
	}
	if utf8.RuneCountInString(r.Password) > maxPasswordLen {
		return errors.New("password cannot exceed 128 characters")
	}
	r.Username = username
	r.Email = email
	return nil
}

// UpdateRoleRequest represents an admin-driven role transition. Promoting to
// customer requires the external client linkage; demoting clears it.
type UpdateRoleRequest struct {
	Role             domainauth.Role `json:"role"`
	ExternalClientID *string         `json:"external_client_id,omitempty"`
}

// Validate validates UpdateRoleRequest.
func (r *UpdateRoleRequest) Validate() error {
	if !r.Role.Valid() {
		return errors.New("role must be one of: pending, customer, admin")
	}
	if r.Role == domainauth.RoleCustomer {
		if r.ExternalClientID == nil || strings.TrimSpace(*r.ExternalClientID) == "" {
			return errors.New("external_client_id is required when role is customer")
		}
	}
	return nil
}
