package auth

// Access policies and the decision function that every protected operation
// consults before any handler logic runs. ResolveAccess is pure: it inspects
// the session and policy and renders a decision; callers translate denials
// into transport concerns (401/403, redirect-to-login).

// PolicyKind identifies the access policy applied to an operation.
type PolicyKind string

const (
	// PolicyOpen always allows, including anonymous callers.
	PolicyOpen PolicyKind = "open"
	// PolicyAuthenticated requires any principal on the session.
	PolicyAuthenticated PolicyKind = "authenticated"
	// PolicyRoleExact requires the principal's role to match exactly.
	PolicyRoleExact PolicyKind = "role_exact"
	// PolicySelfOrAdmin allows admins, or customers whose external client id
	// matches the subject of the operation.
	PolicySelfOrAdmin PolicyKind = "self_or_admin"
)

// Policy tags an operation with its access requirements.
// Construct via Open, Authenticated, RoleExact, or SelfOrAdmin.
type Policy struct {
	Kind      PolicyKind
	Role      Role   // set for RoleExact
	SubjectID string // set for SelfOrAdmin: the external client id of the target resource
}

// Open returns the policy that allows every caller.
func Open() Policy { return Policy{Kind: PolicyOpen} }

// Authenticated returns the policy that requires a signed-in principal.
func Authenticated() Policy { return Policy{Kind: PolicyAuthenticated} }

// RoleExact returns the policy that requires exactly the given role.
func RoleExact(role Role) Policy { return Policy{Kind: PolicyRoleExact, Role: role} }

// SelfOrAdmin returns the policy that allows admins, or the customer whose
// external client id equals subjectID.
func SelfOrAdmin(subjectID string) Policy {
	return Policy{Kind: PolicySelfOrAdmin, SubjectID: subjectID}
}

// Outcome is the tagged result of an access decision.
type Outcome string

const (
	// OutcomeAllow grants access; Decision.Principal carries the caller when present.
	OutcomeAllow Outcome = "allow"
	// OutcomeDenyUnauthenticated rejects because no principal is on the session.
	OutcomeDenyUnauthenticated Outcome = "deny_unauthenticated"
	// OutcomeDenyForbidden rejects an authenticated principal lacking the role or linkage.
	OutcomeDenyForbidden Outcome = "deny_forbidden"
)

// Decision is the result of resolving a policy against a session.
type Decision struct {
	Outcome   Outcome
	Principal *Principal // non-nil when the session carried a principal
}

// Allowed reports whether the decision grants access.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }

// ResolveAccess evaluates a policy against the caller's session.
// A nil or expired-and-cleared session is indistinguishable from anonymous:
// both resolve to deny_unauthenticated under any policy that needs a principal.
func ResolveAccess(session *Session, policy Policy) Decision {
	var principal *Principal
	if session != nil {
		principal = session.Principal
	}

	if policy.Kind == PolicyOpen {
		return Decision{Outcome: OutcomeAllow, Principal: principal}
	}

	if principal == nil {
		return Decision{Outcome: OutcomeDenyUnauthenticated}
	}

	switch policy.Kind {
	case PolicyAuthenticated:
		return Decision{Outcome: OutcomeAllow, Principal: principal}

	case PolicyRoleExact:
		if principal.Role != policy.Role {
			return Decision{Outcome: OutcomeDenyForbidden, Principal: principal}
		}
		return Decision{Outcome: OutcomeAllow, Principal: principal}

	case PolicySelfOrAdmin:
		if principal.Role == RoleAdmin {
			return Decision{Outcome: OutcomeAllow, Principal: principal}
		}
		if principal.Role == RoleCustomer &&
			principal.ExternalClientID != nil &&
			*principal.ExternalClientID == policy.SubjectID {
			return Decision{Outcome: OutcomeAllow, Principal: principal}
		}
		return Decision{Outcome: OutcomeDenyForbidden, Principal: principal}
	}

	// Unknown policy kinds never grant access.
	return Decision{Outcome: OutcomeDenyForbidden, Principal: principal}
}
