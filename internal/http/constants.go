package httpx

// Cookie names shared across handlers and middleware.
const (
	sessionCookieName = "session_id"
)

// Pagination defaults for list endpoints.
const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)
