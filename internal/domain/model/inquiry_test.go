package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInquiryRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreateInquiryRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  CreateInquiryRequest{Username: "acme", Email: "a@acme.com"},
		},
		{
			name: "trims whitespace",
			req:  CreateInquiryRequest{Username: "  acme  ", Email: " a@acme.com "},
		},
		{
			name:    "missing username",
			req:     CreateInquiryRequest{Email: "a@acme.com"},
			wantErr: "username is required",
		},
		{
			name:    "missing email",
			req:     CreateInquiryRequest{Username: "acme"},
			wantErr: "email is required",
		},
		{
			name:    "malformed email",
			req:     CreateInquiryRequest{Username: "acme", Email: "not-an-email"},
			wantErr: "not a valid address",
		},
		{
			name:    "username too long",
			req:     CreateInquiryRequest{Username: strings.Repeat("a", 101), Email: "a@acme.com"},
			wantErr: "cannot exceed 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseInquiryStatus(t *testing.T) {
	t.Parallel()

	status, ok := ParseInquiryStatus(" Pending ")
	assert.True(t, ok)
	assert.Equal(t, InquiryStatusPending, status)

	status, ok = ParseInquiryStatus("imported")
	assert.True(t, ok)
	assert.Equal(t, InquiryStatusImported, status)

	_, ok = ParseInquiryStatus("rejected")
	assert.False(t, ok)
}

func TestClientFromInquiry(t *testing.T) {
	t.Parallel()

	phone := "555-0100"
	company := "Acme Co"
	details := "needs monthly invoicing"
	inq := &PendingInquiry{
		ID:             7,
		Username:       "acme",
		Email:          "a@acme.com",
		PhoneNumber:    &phone,
		CompanyName:    &company,
		InquiryDetails: &details,
		Status:         InquiryStatusPending,
	}

	req := ClientFromInquiry(inq)
	assert.Equal(t, "acme", req.Name)
	assert.Equal(t, "a@acme.com", req.Email)
	assert.Equal(t, phone, req.Phone)
	assert.Equal(t, company, req.Company)
	assert.Equal(t, details, req.Notes)
	require.NoError(t, req.Validate())
}

func TestClientFromInquiry_OptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	req := ClientFromInquiry(&PendingInquiry{Username: "acme", Email: "a@acme.com"})
	assert.Empty(t, req.Phone)
	assert.Empty(t, req.Company)
	assert.Empty(t, req.Notes)
}
