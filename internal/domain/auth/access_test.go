package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func customerSession(externalClientID string) *Session {
	return &Session{
		ID: "sess-customer",
		Principal: &Principal{
			ID:               "p-customer",
			Username:         "acme",
			Role:             RoleCustomer,
			ExternalClientID: strPtr(externalClientID),
		},
	}
}

func adminSession() *Session {
	return &Session{
		ID:        "sess-admin",
		Principal: &Principal{ID: "p-admin", Username: "ops", Role: RoleAdmin},
	}
}

func TestResolveAccess_Open(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OutcomeAllow, ResolveAccess(nil, Open()).Outcome)
	assert.Equal(t, OutcomeAllow, ResolveAccess(&Session{ID: "anon"}, Open()).Outcome)

	d := ResolveAccess(adminSession(), Open())
	assert.Equal(t, OutcomeAllow, d.Outcome)
	require.NotNil(t, d.Principal)
	assert.Equal(t, RoleAdmin, d.Principal.Role)
}

func TestResolveAccess_Authenticated(t *testing.T) {
	t.Parallel()

	assert.Equal(t, OutcomeDenyUnauthenticated, ResolveAccess(nil, Authenticated()).Outcome)
	assert.Equal(t, OutcomeDenyUnauthenticated, ResolveAccess(&Session{ID: "anon"}, Authenticated()).Outcome)
	assert.Equal(t, OutcomeAllow, ResolveAccess(customerSession("C123"), Authenticated()).Outcome)
}

func TestResolveAccess_RoleExact(t *testing.T) {
	t.Parallel()

	policy := RoleExact(RoleAdmin)

	// Absent principal and wrong role must be distinguishable outcomes.
	assert.Equal(t, OutcomeDenyUnauthenticated, ResolveAccess(nil, policy).Outcome)

	denied := ResolveAccess(customerSession("C123"), policy)
	assert.Equal(t, OutcomeDenyForbidden, denied.Outcome)
	require.NotNil(t, denied.Principal)

	assert.Equal(t, OutcomeAllow, ResolveAccess(adminSession(), policy).Outcome)
}

func TestResolveAccess_RoleExact_PendingDenied(t *testing.T) {
	t.Parallel()

	pending := &Session{ID: "s", Principal: &Principal{ID: "p", Role: RolePending}}
	assert.Equal(t, OutcomeDenyForbidden, ResolveAccess(pending, RoleExact(RoleCustomer)).Outcome)
}

func TestResolveAccess_SelfOrAdmin(t *testing.T) {
	t.Parallel()

	policy := SelfOrAdmin("C123")

	assert.Equal(t, OutcomeDenyUnauthenticated, ResolveAccess(nil, policy).Outcome)

	// Matching customer is allowed.
	assert.Equal(t, OutcomeAllow, ResolveAccess(customerSession("C123"), policy).Outcome)

	// Customer linked to a different client is forbidden.
	assert.Equal(t, OutcomeDenyForbidden, ResolveAccess(customerSession("C999"), policy).Outcome)

	// Admin is allowed regardless of subject.
	assert.Equal(t, OutcomeAllow, ResolveAccess(adminSession(), SelfOrAdmin("C999")).Outcome)
}

func TestResolveAccess_SelfOrAdmin_CustomerWithoutLinkage(t *testing.T) {
	t.Parallel()

	sess := &Session{ID: "s", Principal: &Principal{ID: "p", Role: RoleCustomer}}
	assert.Equal(t, OutcomeDenyForbidden, ResolveAccess(sess, SelfOrAdmin("C123")).Outcome)
}

func TestResolveAccess_PureOverRepeatedCalls(t *testing.T) {
	t.Parallel()

	sess := customerSession("C123")
	policy := SelfOrAdmin("C123")

	first := ResolveAccess(sess, policy)
	second := ResolveAccess(sess, policy)
	assert.Equal(t, first, second)
	// The decision never mutates the session.
	assert.Equal(t, "C123", *sess.Principal.ExternalClientID)
}
