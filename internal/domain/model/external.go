package model

import (
	"errors"
	"strings"
	"time"
)

// Projections of records owned by the external accounting system. The portal
// never treats these as authoritative; they are fetched live per request and
// keyed by the external system's own identifiers.

// ExternalClient is a client record in the accounting system.
type ExternalClient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// ExternalProject is a project record scoped to the connected account.
type ExternalProject struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id,omitempty"`
	Name      string     `json:"name"`
	Status    string     `json:"status,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ExternalInvoice is an invoice record scoped to the connected account.
type ExternalInvoice struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id,omitempty"`
	Number      string     `json:"number,omitempty"`
	Status      string     `json:"status,omitempty"`
	AmountCents int64      `json:"amount_cents"`
	Currency    string     `json:"currency,omitempty"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

// CreateClientRequest carries the fields sent to the accounting API when the
// approval workflow converts an inquiry into a managed client record.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Validate validates CreateClientRequest.
func (r *CreateClientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	return nil
}

// ClientFromInquiry maps an inquiry's fields onto a client-creation request.
func ClientFromInquiry(inq *PendingInquiry) CreateClientRequest {
	req := CreateClientRequest{
		Name:  inq.Username,
		Email: inq.Email,
	}
	if inq.PhoneNumber != nil {
		req.Phone = *inq.PhoneNumber
	}
	if inq.CompanyName != nil {
		req.Company = *inq.CompanyName
	}
	if inq.InquiryDetails != nil {
		req.Notes = *inq.InquiryDetails
	}
	return req
}
