// Package testutil provides testing utilities and helpers for the portal.
package testutil

import (
	"fmt"

	"github.com/copperline/bizportal/internal/domain/model"
)

// InquiryRequestBuilder provides a fluent interface for building CreateInquiryRequest objects for testing.
type InquiryRequestBuilder struct {
	req *model.CreateInquiryRequest
}

// NewInquiryRequest creates a new InquiryRequestBuilder with sensible defaults.
func NewInquiryRequest() *InquiryRequestBuilder {
	return &InquiryRequestBuilder{
		req: &model.CreateInquiryRequest{
			Username: "acme-books",
			Email:    "owner@acme.example.com",
		},
	}
}

// WithUsername sets the requested username.
func (b *InquiryRequestBuilder) WithUsername(username string) *InquiryRequestBuilder {
	b.req.Username = username
	return b
}

// WithEmail sets the contact email.
func (b *InquiryRequestBuilder) WithEmail(email string) *InquiryRequestBuilder {
	b.req.Email = email
	return b
}

// WithPhoneNumber sets the optional phone number.
func (b *InquiryRequestBuilder) WithPhoneNumber(phone string) *InquiryRequestBuilder {
	b.req.PhoneNumber = &phone
	return b
}

// WithCompanyName sets the optional company name.
func (b *InquiryRequestBuilder) WithCompanyName(company string) *InquiryRequestBuilder {
	b.req.CompanyName = &company
	return b
}

// WithDetails sets the optional free-form inquiry details.
func (b *InquiryRequestBuilder) WithDetails(details string) *InquiryRequestBuilder {
	b.req.InquiryDetails = &details
	return b
}

// Build returns the constructed CreateInquiryRequest.
func (b *InquiryRequestBuilder) Build() *model.CreateInquiryRequest {
	return b.req
}

// PrincipalRequestBuilder provides a fluent interface for building CreatePrincipalRequest objects for testing.
type PrincipalRequestBuilder struct {
	req *model.CreatePrincipalRequest
}

// NewPrincipalRequest creates a new PrincipalRequestBuilder with sensible defaults.
func NewPrincipalRequest() *PrincipalRequestBuilder {
	return &PrincipalRequestBuilder{
		req: &model.CreatePrincipalRequest{
			Username: "testuser",
			Email:    "testuser@example.com",
			Password: "correct-horse-battery",
		},
	}
}

// WithUsername sets the username.
func (b *PrincipalRequestBuilder) WithUsername(username string) *PrincipalRequestBuilder {
	b.req.Username = username
	return b
}

// WithEmail sets the email.
func (b *PrincipalRequestBuilder) WithEmail(email string) *PrincipalRequestBuilder {
	b.req.Email = email
	return b
}

// WithPassword sets the plaintext password.
func (b *PrincipalRequestBuilder) WithPassword(password string) *PrincipalRequestBuilder {
	b.req.Password = password
	return b
}

// Build returns the constructed CreatePrincipalRequest.
func (b *PrincipalRequestBuilder) Build() *model.CreatePrincipalRequest {
	return b.req
}

// Common test request presets

// UniquePrincipalRequest creates a registration request with a distinct
// username and email derived from the given suffix, for tests that insert
// multiple principals into a shared database.
func UniquePrincipalRequest(suffix string) *model.CreatePrincipalRequest {
	return NewPrincipalRequest().
		WithUsername("user-" + suffix).
		WithEmail(fmt.Sprintf("user-%s@example.com", suffix)).
		Build()
}

// CompanyInquiryRequest creates an inquiry that fills in every optional field.
func CompanyInquiryRequest(company string) *model.CreateInquiryRequest {
	return NewInquiryRequest().
		WithUsername(company).
		WithEmail(fmt.Sprintf("contact@%s.example.com", company)).
		WithPhoneNumber("+1-555-0100").
		WithCompanyName(company).
		WithDetails("Interested in invoicing and project tracking.").
		Build()
}

// MinimalInquiryRequest creates an inquiry with only the required fields set.
func MinimalInquiryRequest() *model.CreateInquiryRequest {
	return NewInquiryRequest().Build()
}
