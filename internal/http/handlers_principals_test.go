package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
)

func TestPrincipalHandlers_UpdateRole(t *testing.T) {
	t.Parallel()

	svc := newFakeAuthService()
	var gotID string
	var gotReq model.UpdateRoleRequest
	svc.UpdateRoleFunc = func(_ context.Context, id string, req model.UpdateRoleRequest) (*model.Principal, error) {
		gotID = id
		gotReq = req
		return &model.Principal{ID: id, Role: req.Role, ExternalClientID: req.ExternalClientID}, nil
	}
	h := &PrincipalHandlers{Svc: svc}

	req := httptest.NewRequest(http.MethodPut, "/api/principals/p-7/role",
		jsonBody(`{"role":"customer","external_client_id":"EXT-9"}`))
	req.SetPathValue("id", "p-7")
	rec := httptest.NewRecorder()

	h.UpdateRole(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p-7", gotID)
	assert.Equal(t, domainauth.RoleCustomer, gotReq.Role)
	require.NotNil(t, gotReq.ExternalClientID)
	assert.Equal(t, "EXT-9", *gotReq.ExternalClientID)
}

func TestPrincipalHandlers_UpdateRoleCustomerNeedsLinkage(t *testing.T) {
	t.Parallel()

	h := &PrincipalHandlers{Svc: newFakeAuthService()}
	req := httptest.NewRequest(http.MethodPut, "/api/principals/p-7/role",
		jsonBody(`{"role":"customer"}`))
	req.SetPathValue("id", "p-7")
	rec := httptest.NewRecorder()

	h.UpdateRole(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrincipalHandlers_ListPagination(t *testing.T) {
	t.Parallel()

	svc := newFakeAuthService()
	var gotLimit, gotOffset int
	svc.ListFunc = func(_ context.Context, limit, offset int) ([]*model.Principal, error) {
		gotLimit, gotOffset = limit, offset
		return []*model.Principal{{ID: "p-1"}}, nil
	}
	h := &PrincipalHandlers{Svc: svc}

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", defaultPageLimit, 0},
		{"explicit", "?limit=25&offset=50", 25, 50},
		{"limit clamped", "?limit=10000", maxPageLimit, 0},
		{"garbage ignored", "?limit=zero&offset=-3", defaultPageLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/principals"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.List(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantLimit, gotLimit)
			assert.Equal(t, tt.wantOffset, gotOffset)

			var body struct {
				Principals []*model.Principal `json:"principals"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Len(t, body.Principals, 1)
		})
	}
}

func TestPrincipalHandlers_GetNotFound(t *testing.T) {
	t.Parallel()

	h := &PrincipalHandlers{Svc: newFakeAuthService()}
	req := httptest.NewRequest(http.MethodGet, "/api/principals/p-missing", nil)
	req.SetPathValue("id", "p-missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
