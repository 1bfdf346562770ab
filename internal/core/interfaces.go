package core

import (
	"context"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// PrincipalRepository defines the interface for principal data operations.
// Principals are never deleted, only role-transitioned.
type PrincipalRepository interface {
	Create(ctx context.Context, req CreatePrincipalParams) (*model.Principal, error)
	GetByID(ctx context.Context, id string) (*model.Principal, error)
	GetByUsername(ctx context.Context, username string) (*model.Principal, error)
	List(ctx context.Context, limit, offset int) ([]*model.Principal, error)
	UpdateRole(ctx context.Context, id string, req model.UpdateRoleRequest) (*model.Principal, error)
}

// CreatePrincipalParams groups parameters for PrincipalRepository.Create to
// keep param count ≤3. The password is already hashed by the service layer.
type CreatePrincipalParams struct {
	Username     string
	Email        string
	PasswordHash string
	Role         domainauth.Role
}

// InquiryRepository defines the interface for pending inquiry data operations.
// Inquiries are created anonymously and never deleted; the only mutation is
// the one-way pending -> imported transition.
type InquiryRepository interface {
	Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.PendingInquiry, error)
	GetByID(ctx context.Context, id int64) (*model.PendingInquiry, error)
	List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PendingInquiry, error)

	// MarkImported transitions an inquiry to imported and records the created
	// external client id. The update is conditional on the row still being
	// pending; ok=false reports that another approval won the race.
	MarkImported(ctx context.Context, params MarkImportedParams) (ok bool, err error)
}

// MarkImportedParams groups parameters for InquiryRepository.MarkImported.
type MarkImportedParams struct {
	InquiryID        int64
	ExternalClientID string
}
