package httpx

import (
	"net/http"

	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

// PrincipalHandlers provides HTTP handlers for admin management of principals.
type PrincipalHandlers struct {
	Svc AuthServiceInterface
}

// List handles principal listing with pagination.
// GET /api/principals?limit=&offset=.
func (h *PrincipalHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	principals, err := h.Svc.ListPrincipals(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"principals": principals})
}

// Get handles single principal retrieval.
// GET /api/principals/{id}.
func (h *PrincipalHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteAppError(w, apperrors.Validation("principal id is required"))
		return
	}

	principal, err := h.Svc.GetPrincipal(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, principal)
}

// UpdateRole handles admin-driven role transitions.
// PUT /api/principals/{id}/role.
func (h *PrincipalHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteAppError(w, apperrors.Validation("principal id is required"))
		return
	}

	var req model.UpdateRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	principal, err := h.Svc.UpdateRole(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, principal)
}
