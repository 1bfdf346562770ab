package data

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperline/bizportal/internal/core"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/testutil"
)

func createTestInquiry(t *testing.T, repo *InquiryRepo, req *model.CreateInquiryRequest) *model.PendingInquiry {
	t.Helper()

	inquiry, err := repo.Create(context.Background(), req)
	require.NoError(t, err)
	return inquiry
}

func TestInquiryRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewInquiryRepo(db)

	t.Run("successful creation", func(t *testing.T) {
		req := testutil.CompanyInquiryRequest("acme-books")

		inquiry, err := repo.Create(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, inquiry)

		assert.NotZero(t, inquiry.ID)
		assert.Equal(t, "acme-books", inquiry.Username)
		assert.Equal(t, "contact@acme-books.example.com", inquiry.Email)
		require.NotNil(t, inquiry.CompanyName)
		assert.Equal(t, "acme-books", *inquiry.CompanyName)
		assert.Equal(t, model.InquiryStatusPending, inquiry.Status)
		assert.Nil(t, inquiry.ExternalClientID)
		assert.Nil(t, inquiry.ImportedAt)
		assert.NotZero(t, inquiry.CreatedAt)
	})

	t.Run("optional fields may be omitted", func(t *testing.T) {
		inquiry := createTestInquiry(t, repo, testutil.MinimalInquiryRequest())

		assert.Nil(t, inquiry.PhoneNumber)
		assert.Nil(t, inquiry.CompanyName)
		assert.Nil(t, inquiry.InquiryDetails)
	})

	t.Run("nil request", func(t *testing.T) {
		inquiry, err := repo.Create(context.Background(), nil)
		require.Error(t, err)
		assert.Nil(t, inquiry)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("invalid email", func(t *testing.T) {
		req := testutil.NewInquiryRequest().WithEmail("not-an-address").Build()

		inquiry, err := repo.Create(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, inquiry)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestInquiryRepo_GetByID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewInquiryRepo(db)
	created := createTestInquiry(t, repo, testutil.MinimalInquiryRequest())

	t.Run("successful retrieval", func(t *testing.T) {
		inquiry, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, inquiry.ID)
		assert.Equal(t, created.Username, inquiry.Username)
	})

	t.Run("inquiry not found", func(t *testing.T) {
		inquiry, err := repo.GetByID(context.Background(), 999999)
		require.Error(t, err)
		assert.Nil(t, inquiry)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestInquiryRepo_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewInquiryRepo(db)

	first := createTestInquiry(t, repo, testutil.CompanyInquiryRequest("first-co"))
	createTestInquiry(t, repo, testutil.CompanyInquiryRequest("second-co"))
	createTestInquiry(t, repo, testutil.CompanyInquiryRequest("third-co"))

	// Import one so the status filter has something to distinguish.
	ok, err := repo.MarkImported(context.Background(), core.MarkImportedParams{
		InquiryID:        first.ID,
		ExternalClientID: "EXT-42",
	})
	require.NoError(t, err)
	require.True(t, ok)

	t.Run("lists all newest first", func(t *testing.T) {
		inquiries, err := repo.List(context.Background(), model.InquiriesListOptions{})
		require.NoError(t, err)
		require.Len(t, inquiries, 3)

		for i := 1; i < len(inquiries); i++ {
			assert.False(t, inquiries[i-1].CreatedAt.Before(inquiries[i].CreatedAt),
				"expected descending created_at ordering")
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		pending := model.InquiryStatusPending
		inquiries, err := repo.List(context.Background(), model.InquiriesListOptions{Status: &pending})
		require.NoError(t, err)
		require.Len(t, inquiries, 2)
		for _, inquiry := range inquiries {
			assert.Equal(t, model.InquiryStatusPending, inquiry.Status)
		}

		imported := model.InquiryStatusImported
		inquiries, err = repo.List(context.Background(), model.InquiriesListOptions{Status: &imported})
		require.NoError(t, err)
		require.Len(t, inquiries, 1)
		assert.Equal(t, first.ID, inquiries[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.List(context.Background(), model.InquiriesListOptions{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := repo.List(context.Background(), model.InquiriesListOptions{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})
}

func TestInquiryRepo_MarkImported(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	db := testutil.SetupTestDB(t)
	repo := NewInquiryRepo(db)

	t.Run("transitions pending to imported", func(t *testing.T) {
		created := createTestInquiry(t, repo, testutil.CompanyInquiryRequest("import-co"))

		ok, err := repo.MarkImported(context.Background(), core.MarkImportedParams{
			InquiryID:        created.ID,
			ExternalClientID: "EXT-100",
		})
		require.NoError(t, err)
		assert.True(t, ok)

		after, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, model.InquiryStatusImported, after.Status)
		require.NotNil(t, after.ExternalClientID)
		assert.Equal(t, "EXT-100", *after.ExternalClientID)
		require.NotNil(t, after.ImportedAt)
	})

	t.Run("second transition reports no update", func(t *testing.T) {
		created := createTestInquiry(t, repo, testutil.CompanyInquiryRequest("twice-co"))

		ok, err := repo.MarkImported(context.Background(), core.MarkImportedParams{
			InquiryID:        created.ID,
			ExternalClientID: "EXT-200",
		})
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = repo.MarkImported(context.Background(), core.MarkImportedParams{
			InquiryID:        created.ID,
			ExternalClientID: "EXT-201",
		})
		require.NoError(t, err)
		assert.False(t, ok)

		// The first import wins; the losing attempt must not overwrite it.
		after, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, after.ExternalClientID)
		assert.Equal(t, "EXT-200", *after.ExternalClientID)
	})

	t.Run("unknown inquiry reports no update", func(t *testing.T) {
		ok, err := repo.MarkImported(context.Background(), core.MarkImportedParams{
			InquiryID:        999999,
			ExternalClientID: "EXT-300",
		})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent approvals produce exactly one import", func(t *testing.T) {
		created := createTestInquiry(t, repo, testutil.CompanyInquiryRequest("race-co"))

		const attempts = 8
		results := make([]bool, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := repo.MarkImported(context.Background(), core.MarkImportedParams{
					InquiryID:        created.ID,
					ExternalClientID: "EXT-RACE",
				})
				assert.NoError(t, err)
				results[i] = ok
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, ok := range results {
			if ok {
				winners++
			}
		}
		assert.Equal(t, 1, winners)
	})
}
