//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxInquiryUsernameLen = 100
	maxInquiryDetailsLen  = 4000
)

// InquiryStatus is the lifecycle state of a pending inquiry.
// The only transition is pending -> imported, performed exactly once by the
// approval workflow. Declined inquiries simply remain pending.
type InquiryStatus string

const (
	InquiryStatusPending  InquiryStatus = "pending"
	InquiryStatusImported InquiryStatus = "imported"
)

// Valid reports whether the inquiry status is supported.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusImported:
		return true
	default:
		return false
	}
}

// ParseInquiryStatus normalizes a status string and reports whether it is supported.
func ParseInquiryStatus(value string) (InquiryStatus, bool) {
	status := InquiryStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// PendingInquiry is an unauthenticated intake record awaiting admin approval
// and conversion into an external client. Inquiries are never deleted.
type PendingInquiry struct {
	ID               int64         `json:"id"                           db:"id"`
	Username         string        `json:"username"                     db:"username"`
	Email            string        `json:"email"                        db:"email"`
	PhoneNumber      *string       `json:"phone_number,omitempty"       db:"phone_number"`
	CompanyName      *string       `json:"company_name,omitempty"       db:"company_name"`
	InquiryDetails   *string       `json:"inquiry_details,omitempty"    db:"inquiry_details"`
	Status           InquiryStatus `json:"status"                       db:"status"`
	ExternalClientID *string       `json:"external_client_id,omitempty" db:"external_client_id"`
	CreatedAt        time.Time     `json:"created_at"                   db:"created_at"`
	ImportedAt       *time.Time    `json:"imported_at,omitempty"        db:"imported_at"`
}

// CreateInquiryRequest represents an anonymous inquiry submission.
type CreateInquiryRequest struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	InquiryDetails *string `json:"inquiry_details,omitempty"`
}

// Validate validates CreateInquiryRequest.
func (r *CreateInquiryRequest) Validate() error {
	username := strings.TrimSpace(r.Username)
	if username == "" {
		return errors.New("username is required and cannot be empty")
	}
	if utf8.RuneCountInString(username) > maxInquiryUsernameLen {
		return errors.New("username cannot exceed 100 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email is not a valid address")
	}
	if r.InquiryDetails != nil && utf8.RuneCountInString(*r.InquiryDetails) > maxInquiryDetailsLen {
		return errors.New("inquiry_details cannot exceed 4000 characters")
	}
	r.Username = username
	r.Email = email
	return nil
}

// InquiriesListOptions controls paging and filtering for listing inquiries.
type InquiriesListOptions struct {
	Limit  int
	Offset int
	Status *InquiryStatus // exact match
}
