package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/bizportal/internal/core"
	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/testutil"
)

func createTestPrincipal(t *testing.T, repo *PrincipalRepo, suffix string) *model.Principal {
	t.Helper()

	req := testutil.UniquePrincipalRequest(suffix)
	principal, err := repo.Create(context.Background(), core.CreatePrincipalParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: "$2a$12$fakedhashforrepotestsonly000000000000000000000000000",
	})
	require.NoError(t, err)
	return principal
}

func TestPrincipalRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewPrincipalRepo(db)

	t.Run("successful creation defaults to pending role", func(t *testing.T) {
		principal, err := repo.Create(context.Background(), core.CreatePrincipalParams{
			Username:     "acme-owner",
			Email:        "owner@acme.example.com",
			PasswordHash: "$2a$12$fakedhashforrepotestsonly000000000000000000000000000",
		})
		require.NoError(t, err)
		require.NotNil(t, principal)

		assert.NotEmpty(t, principal.ID)
		assert.Equal(t, "acme-owner", principal.Username)
		assert.Equal(t, "owner@acme.example.com", principal.Email)
		assert.Equal(t, domainauth.RolePending, principal.Role)
		assert.Nil(t, principal.ExternalClientID)
		assert.NotZero(t, principal.CreatedAt)
		assert.Equal(t, principal.CreatedAt, principal.UpdatedAt)
	})

	t.Run("explicit role is preserved", func(t *testing.T) {
		principal, err := repo.Create(context.Background(), core.CreatePrincipalParams{
			Username:     "portal-admin",
			Email:        "admin@portal.example.com",
			PasswordHash: "$2a$12$fakedhashforrepotestsonly000000000000000000000000000",
			Role:         domainauth.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleAdmin, principal.Role)
	})

	t.Run("missing username", func(t *testing.T) {
		principal, err := repo.Create(context.Background(), core.CreatePrincipalParams{
			Username:     "   ",
			Email:        "blank@example.com",
			PasswordHash: "hash",
		})
		require.Error(t, err)
		assert.Nil(t, principal)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, "username", apperrors.GetField(err))
	})

	t.Run("missing password hash", func(t *testing.T) {
		principal, err := repo.Create(context.Background(), core.CreatePrincipalParams{
			Username: "nohash",
			Email:    "nohash@example.com",
		})
		require.Error(t, err)
		assert.Nil(t, principal)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		first := createTestPrincipal(t, repo, "dup")

		_, err := repo.Create(context.Background(), core.CreatePrincipalParams{
			Username:     first.Username,
			Email:        "different@example.com",
			PasswordHash: "hash",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestPrincipalRepo_GetByID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewPrincipalRepo(db)
	created := createTestPrincipal(t, repo, "getbyid")

	t.Run("successful retrieval", func(t *testing.T) {
		principal, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, principal)
		assert.Equal(t, created.ID, principal.ID)
		assert.Equal(t, created.Username, principal.Username)
	})

	t.Run("principal not found", func(t *testing.T) {
		principal, err := repo.GetByID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
		require.Error(t, err)
		assert.Nil(t, principal)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPrincipalRepo_GetByUsername(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewPrincipalRepo(db)
	created := createTestPrincipal(t, repo, "byname")

	t.Run("successful retrieval", func(t *testing.T) {
		principal, err := repo.GetByUsername(context.Background(), created.Username)
		require.NoError(t, err)
		assert.Equal(t, created.ID, principal.ID)
	})

	t.Run("unknown username", func(t *testing.T) {
		principal, err := repo.GetByUsername(context.Background(), "nobody")
		require.Error(t, err)
		assert.Nil(t, principal)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPrincipalRepo_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewPrincipalRepo(db)

	for _, suffix := range []string{"list1", "list2", "list3"} {
		createTestPrincipal(t, repo, suffix)
	}

	t.Run("lists newest first", func(t *testing.T) {
		principals, err := repo.List(context.Background(), 10, 0)
		require.NoError(t, err)
		require.Len(t, principals, 3)

		for i := 1; i < len(principals); i++ {
			assert.False(t, principals[i-1].CreatedAt.Before(principals[i].CreatedAt),
				"expected descending created_at ordering")
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.List(context.Background(), 2, 0)
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := repo.List(context.Background(), 2, 2)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		principals, err := repo.List(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Len(t, principals, 3)
	})
}

func TestPrincipalRepo_UpdateRole(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewPrincipalRepo(db)

	t.Run("promote to customer records linkage", func(t *testing.T) {
		created := createTestPrincipal(t, repo, "promote")
		extID := "EXT-1001"

		updated, err := repo.UpdateRole(context.Background(), created.ID, model.UpdateRoleRequest{
			Role:             domainauth.RoleCustomer,
			ExternalClientID: &extID,
		})
		require.NoError(t, err)
		assert.Equal(t, domainauth.RoleCustomer, updated.Role)
		require.NotNil(t, updated.ExternalClientID)
		assert.Equal(t, extID, *updated.ExternalClientID)
	})

	t.Run("demotion clears linkage", func(t *testing.T) {
		created := createTestPrincipal(t, repo, "demote")
		extID := "EXT-1002"

		_, err := repo.UpdateRole(context.Background(), created.ID, model.UpdateRoleRequest{
			Role:             domainauth.RoleCustomer,
			ExternalClientID: &extID,
		})
		require.NoError(t, err)

		updated, err := repo.UpdateRole(context.Background(), created.ID, model.UpdateRoleRequest{
			Role: domainauth.RolePending,
		})
		require.NoError(t, err)
		assert.Equal(t, domainauth.RolePending, updated.Role)
		assert.Nil(t, updated.ExternalClientID)
	})

	t.Run("customer role requires linkage", func(t *testing.T) {
		created := createTestPrincipal(t, repo, "nolink")

		updated, err := repo.UpdateRole(context.Background(), created.ID, model.UpdateRoleRequest{
			Role: domainauth.RoleCustomer,
		})
		require.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("principal not found", func(t *testing.T) {
		extID := "EXT-1003"
		updated, err := repo.UpdateRole(context.Background(), "550e8400-e29b-41d4-a716-446655440000", model.UpdateRoleRequest{
			Role:             domainauth.RoleCustomer,
			ExternalClientID: &extID,
		})
		require.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
