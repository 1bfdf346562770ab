package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

// InquiryServiceInterface defines the interface for inquiry operations.
type InquiryServiceInterface interface {
	Submit(ctx context.Context, req *model.CreateInquiryRequest) (*model.PendingInquiry, error)
	List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PendingInquiry, error)
	GetByID(ctx context.Context, id int64) (*model.PendingInquiry, error)
	Approve(ctx context.Context, sessionID string, inquiryID int64) (*model.PendingInquiry, error)
}

// InquiryHandlers provides HTTP handlers for inquiry intake and the approval
// workflow.
type InquiryHandlers struct {
	Svc InquiryServiceInterface
}

// Submit handles anonymous inquiry intake.
// POST /api/inquiries.
func (h *InquiryHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInquiryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	inquiry, err := h.Svc.Submit(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, inquiry)
}

// List handles inquiry listing with optional status filtering.
// GET /api/inquiries?status=&limit=&offset=.
func (h *InquiryHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	opts := model.InquiriesListOptions{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := model.ParseInquiryStatus(raw)
		if !ok {
			WriteAppError(w, apperrors.ValidationField("status", "status must be pending or imported"))
			return
		}
		opts.Status = &status
	}

	inquiries, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"inquiries": inquiries})
}

// Get handles single inquiry retrieval.
// GET /api/inquiries/{id}.
func (h *InquiryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := inquiryID(w, r)
	if !ok {
		return
	}

	inquiry, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, inquiry)
}

// Approve converts a pending inquiry into an external client record.
// POST /api/inquiries/{id}/approve.
func (h *InquiryHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := inquiryID(w, r)
	if !ok {
		return
	}

	session := GetSessionFromContext(r.Context())
	inquiry, err := h.Svc.Approve(r.Context(), session.ID, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, inquiry)
}

func inquiryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		WriteAppError(w, apperrors.ValidationField("id", "inquiry id must be a positive integer"))
		return 0, false
	}
	return id, true
}
