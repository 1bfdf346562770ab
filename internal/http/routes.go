package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/observability/statsd"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       AuthServiceInterface
	Connection ConnectionServiceInterface
	Sync       SyncServiceInterface
	Inquiries  InquiryServiceInterface
	Clients    ClientLookupInterface

	CookieDomain string
	Metrics      statsd.Sink  // Optional: request metrics sink
	Logger       *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger}
	connectionHandlers := &ConnectionHandlers{Svc: services.Connection}
	syncHandlers := &SyncHandlers{Svc: services.Sync}
	inquiryHandlers := &InquiryHandlers{Svc: services.Inquiries}
	clientHandlers := &ClientHandlers{Svc: services.Clients}

	requireAuth := RequireAuth(services.Auth)
	requireAdmin := RequireRole(services.Auth, domainauth.RoleAdmin)

	// Open endpoints.
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.HandleFunc("POST /api/auth/register", authHandlers.Register)
	mux.HandleFunc("POST /api/auth/login", authHandlers.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /api/auth/status", authHandlers.Status)
	mux.HandleFunc("POST /api/inquiries", inquiryHandlers.Submit)

	// Any authenticated principal. Accounting-backed routes fail closed with
	// not-connected when no provider is configured for this deployment.
	connection := whenConfigured(services.Connection != nil)
	sync := whenConfigured(services.Sync != nil)
	clients := whenConfigured(services.Clients != nil)
	mux.Handle("GET /api/accounting/connect", requireAuth(connection(connectionHandlers.Connect)))
	mux.Handle("GET /api/accounting/callback", requireAuth(connection(connectionHandlers.Callback)))
	mux.Handle("POST /api/accounting/disconnect", requireAuth(connection(connectionHandlers.Disconnect)))
	mux.Handle("GET /api/accounting/status", requireAuth(connection(connectionHandlers.Status)))
	mux.Handle("POST /api/sync", requireAuth(sync(syncHandlers.Run)))
	// Self-or-admin check happens in the handler, where the subject id is known.
	mux.Handle("GET /api/clients/{externalID}", requireAuth(clients(clientHandlers.Get)))

	// Admin only.
	mux.Handle("GET /api/inquiries", requireAdmin(http.HandlerFunc(inquiryHandlers.List)))
	mux.Handle("GET /api/inquiries/{id}", requireAdmin(http.HandlerFunc(inquiryHandlers.Get)))
	mux.Handle("POST /api/inquiries/{id}/approve", requireAdmin(http.HandlerFunc(inquiryHandlers.Approve)))
	principalHandlers := &PrincipalHandlers{Svc: services.Auth}
	mux.Handle("GET /api/principals", requireAdmin(http.HandlerFunc(principalHandlers.List)))
	mux.Handle("GET /api/principals/{id}", requireAdmin(http.HandlerFunc(principalHandlers.Get)))
	mux.Handle("PUT /api/principals/{id}/role", requireAdmin(http.HandlerFunc(principalHandlers.UpdateRole)))

	var handler http.Handler = mux
	handler = Metrics(services.Metrics)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

// whenConfigured returns the handler unchanged when its backing service is
// wired, and a not-connected responder otherwise, so a deployment without the
// accounting provider rejects these routes instead of panicking on a nil
// service.
func whenConfigured(ok bool) func(http.HandlerFunc) http.Handler {
	return func(h http.HandlerFunc) http.Handler {
		if ok {
			return h
		}
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			WriteAppError(w, apperrors.NotConnected("accounting provider is not configured"))
		})
	}
}
