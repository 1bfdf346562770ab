package httpx

import (
	"context"
	"net/http"

	"github.com/copperline/bizportal/internal/domain/model"
)

// SyncServiceInterface defines the interface for sync operations.
type SyncServiceInterface interface {
	Run(ctx context.Context, sessionID string) (*model.SyncReport, error)
}

// SyncHandlers provides the HTTP handler for on-demand accounting syncs.
type SyncHandlers struct {
	Svc SyncServiceInterface
}

// resourceOutcome is the wire shape of one resource class's sync result.
type resourceOutcome struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Run triggers a sync for the current session.
// POST /api/sync.
func (h *SyncHandlers) Run(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	report, err := h.Svc.Run(r.Context(), session.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]resourceOutcome{
		"projects": outcomeOf(report.Projects.Data, report.Projects.Err),
		"invoices": outcomeOf(report.Invoices.Data, report.Invoices.Err),
	})
}

func outcomeOf(data any, err error) resourceOutcome {
	if err != nil {
		return resourceOutcome{OK: false, Error: messageOf(err)}
	}
	return resourceOutcome{OK: true, Data: data}
}
