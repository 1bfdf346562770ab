package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
)

func TestCreatePrincipalRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := CreatePrincipalRequest{Username: "acme", Email: "a@acme.com", Password: "s3cret-pass-word"}
	require.NoError(t, valid.Validate())

	short := CreatePrincipalRequest{Username: "acme", Email: "a@acme.com", Password: "short"}
	require.Error(t, short.Validate())
	assert.Contains(t, short.Validate().Error(), "at least 10")

	noEmail := CreatePrincipalRequest{Username: "acme", Password: "s3cret-pass-word"}
	require.Error(t, noEmail.Validate())
}

func TestUpdateRoleRequest_Validate(t *testing.T) {
	t.Parallel()

	ext := "C123"

	assert.NoError(t, (&UpdateRoleRequest{Role: domainauth.RoleAdmin}).Validate())
	assert.NoError(t, (&UpdateRoleRequest{Role: domainauth.RoleCustomer, ExternalClientID: &ext}).Validate())

	// Customer promotion without linkage is rejected.
	err := (&UpdateRoleRequest{Role: domainauth.RoleCustomer}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "external_client_id is required")

	require.Error(t, (&UpdateRoleRequest{Role: "guest"}).Validate())
}

func TestPrincipal_ToDomain(t *testing.T) {
	t.Parallel()

	ext := "C123"
	rec := Principal{
		ID:               "p1",
		Username:         "acme",
		Email:            "a@acme.com",
		PasswordHash:     "hash",
		Role:             domainauth.RoleCustomer,
		ExternalClientID: &ext,
	}

	p := rec.ToDomain()
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, domainauth.RoleCustomer, p.Role)
	require.NotNil(t, p.ExternalClientID)
	assert.Equal(t, "C123", *p.ExternalClientID)
}
