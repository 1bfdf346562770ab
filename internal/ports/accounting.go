package ports

import (
	"context"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
)

// AccountingClient consumes the external accounting API on behalf of a
// connected principal. Every call is scoped to the credential it is handed and
// bounded by the client's configured timeout; the external system remains the
// source of truth for every record these calls return.
type AccountingClient interface {
	// Projects fetches the project records visible to the connected account.
	Projects(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalProject, error)

	// Invoices fetches the invoice records visible to the connected account.
	Invoices(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalInvoice, error)

	// Client fetches a single client record by the external system's id.
	Client(ctx context.Context, bundle domainauth.TokenBundle, externalID string) (*model.ExternalClient, error)

	// CreateClient creates a client record from an approved inquiry's fields.
	CreateClient(ctx context.Context, bundle domainauth.TokenBundle, req model.CreateClientRequest) (*model.ExternalClient, error)
}
