package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

// ClientLookupInterface defines the interface for external client lookups.
type ClientLookupInterface interface {
	Client(ctx context.Context, sessionID, externalID string) (*model.ExternalClient, error)
}

// ClientHandlers provides HTTP handlers for viewing external client records.
type ClientHandlers struct {
	Svc ClientLookupInterface
}

// Get fetches one client record. Admins may view any client; a customer may
// only view the client record they are linked to.
// GET /api/clients/{externalID}.
func (h *ClientHandlers) Get(w http.ResponseWriter, r *http.Request) {
	externalID := r.PathValue("externalID")
	if externalID == "" {
		WriteAppError(w, apperrors.Validation("external client id is required"))
		return
	}

	session := GetSessionFromContext(r.Context())
	decision := domainauth.ResolveAccess(session, domainauth.SelfOrAdmin(externalID))
	if !writeDecision(w, decision) {
		return
	}

	client, err := h.Svc.Client(r.Context(), session.ID, externalID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, client)
}
