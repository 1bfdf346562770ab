package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/copperline/bizportal/internal/service"
)

// ConnectionServiceInterface defines the interface for accounting connection
// operations.
type ConnectionServiceInterface interface {
	AuthorizationURL() string
	CompleteAuthorization(ctx context.Context, sessionID, code string) error
	Disconnect(ctx context.Context, sessionID string) error
	Status(ctx context.Context, sessionID string) (service.ConnectionStatus, error)
}

// ConnectionHandlers provides HTTP handlers for the accounting provider
// connection flow.
type ConnectionHandlers struct {
	Svc ConnectionServiceInterface
}

// Connect redirects the browser to the provider's authorization page.
// GET /api/accounting/connect.
func (h *ConnectionHandlers) Connect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Svc.AuthorizationURL(), http.StatusFound)
}

// Callback completes the authorization flow with the code the provider
// redirected back with.
// GET /api/accounting/callback?code=<code>.
func (h *ConnectionHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_code",
			Err:     errors.New("authorization code is required"),
		})
		return
	}

	session := GetSessionFromContext(r.Context())
	if err := h.Svc.CompleteAuthorization(r.Context(), session.ID, code); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

// Disconnect drops the session's accounting credential.
// POST /api/accounting/disconnect.
func (h *ConnectionHandlers) Disconnect(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if err := h.Svc.Disconnect(r.Context(), session.ID); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// Status reports whether the session holds an accounting credential.
// GET /api/accounting/status.
func (h *ConnectionHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	status, err := h.Svc.Status(r.Context(), session.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}
