package service

import (
	"context"
	"log/slog"

	"github.com/copperline/bizportal/internal/core"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/ports"
)

// InquiryServiceOptions groups dependencies for InquiryService.
type InquiryServiceOptions struct {
	Inquiries  core.InquiryRepository
	Connection *ConnectionService
	Accounting ports.AccountingClient
	Logger     *slog.Logger
}

// InquiryService handles inquiry intake and the approval workflow that
// converts a pending inquiry into a client record in the accounting system.
// Connection and Accounting may be nil when no provider is configured; intake
// keeps working and only approvals report not-connected.
type InquiryService struct {
	inquiries  core.InquiryRepository
	connection *ConnectionService
	accounting ports.AccountingClient
	logger     *slog.Logger
}

// NewInquiryService constructs a new InquiryService.
func NewInquiryService(opts InquiryServiceOptions) *InquiryService {
	if opts.Inquiries == nil {
		panic("InquiryService requires an inquiry repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &InquiryService{
		inquiries:  opts.Inquiries,
		connection: opts.Connection,
		accounting: opts.Accounting,
		logger:     logger,
	}
}

// Submit records an inquiry from an anonymous visitor.
func (s *InquiryService) Submit(ctx context.Context, req *model.CreateInquiryRequest) (*model.PendingInquiry, error) {
	return s.inquiries.Create(ctx, req)
}

// List retrieves inquiries with optional status filtering.
func (s *InquiryService) List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PendingInquiry, error) {
	return s.inquiries.List(ctx, opts)
}

// GetByID retrieves an inquiry by ID.
func (s *InquiryService) GetByID(ctx context.Context, id int64) (*model.PendingInquiry, error) {
	return s.inquiries.GetByID(ctx, id)
}

// Approve converts a pending inquiry into a client record in the accounting
// system and then marks the inquiry imported. The external create strictly
// precedes the local transition, so an approval can never record an import
// without the client existing externally. An already-imported inquiry is
// reported as such without touching the accounting system.
func (s *InquiryService) Approve(ctx context.Context, sessionID string, inquiryID int64) (*model.PendingInquiry, error) {
	if s.connection == nil || s.accounting == nil {
		return nil, apperrors.NotConnected("accounting provider is not configured")
	}

	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry.Status == model.InquiryStatusImported {
		return nil, apperrors.AlreadyImported("inquiry is already imported")
	}

	bundle, err := s.connection.ResolveToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	client, err := s.accounting.CreateClient(ctx, bundle, model.ClientFromInquiry(inquiry))
	if err != nil {
		return nil, err
	}

	ok, err := s.inquiries.MarkImported(ctx, core.MarkImportedParams{
		InquiryID:        inquiryID,
		ExternalClientID: client.ID,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another approval won the race after our read. The external system
		// now holds a duplicate client record; surface it for manual cleanup.
		s.logger.Warn("concurrent approval created duplicate external client",
			"inquiry_id", inquiryID,
			"external_client_id", client.ID)
		return nil, apperrors.AlreadyImported("inquiry is already imported")
	}

	return s.inquiries.GetByID(ctx, inquiryID)
}
