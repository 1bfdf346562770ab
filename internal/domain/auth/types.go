package auth

// Package auth contains domain-level types for principals, sessions, and
// delegated accounting credentials. It is pure and free of framework/adapter
// concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	// RolePending is assigned at registration, before an admin has linked the
	// principal to an external client record.
	RolePending Role = "pending"
	// RoleCustomer is a principal linked to exactly one external client record.
	RoleCustomer Role = "customer"
	// RoleAdmin may manage inquiries, roles, and trigger any operation.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the defined constants.
func (r Role) Valid() bool {
	switch r {
	case RolePending, RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated identity attached to a session.
// ExternalClientID links a customer principal to exactly one client record in
// the external accounting system; it is only meaningful when Role is customer.
type Principal struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	Role             Role    `json:"role"`
	ExternalClientID *string `json:"external_client_id,omitempty"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
// A nil Principal means the session is anonymous.
type Session struct {
	ID        string     `json:"id"`
	Principal *Principal `json:"principal,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// IsAnonymous reports whether the session carries no principal.
func (s Session) IsAnonymous() bool { return s.Principal == nil }

// TokenBundle is a delegated OAuth credential set used to call the external
// accounting API on a principal's behalf. A bundle is exclusively owned by the
// session that produced it and dies with that session.
type TokenBundle struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsExpired reports whether the bundle's access token has expired at the given
// instant. Monotonic in now: once true for some now, true for all later times.
func (b TokenBundle) IsExpired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}
