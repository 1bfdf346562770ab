package accounting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
)

func liveBundle() domainauth.TokenBundle {
	return domainauth.TokenBundle{
		AccessToken:  "at-valid",
		RefreshToken: "rt-valid",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{BaseURL: server.URL})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL is required")
}

func TestClient_Projects(t *testing.T) {
	var gotAuth, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.ExternalProject{
			{ID: "P-1", ClientID: "C-1", Name: "Website redesign", Status: "active"},
			{ID: "P-2", ClientID: "C-2", Name: "Annual audit", Status: "closed"},
		})
	}))

	projects, err := client.Projects(context.Background(), liveBundle())
	require.NoError(t, err)
	assert.Equal(t, "Bearer at-valid", gotAuth)
	assert.Equal(t, "/projects", gotPath)
	require.Len(t, projects, 2)
	assert.Equal(t, "P-1", projects[0].ID)
	assert.Equal(t, "Annual audit", projects[1].Name)
}

func TestClient_Invoices(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.ExternalInvoice{
			{ID: "INV-10", ClientID: "C-1", Number: "2026-0042", Status: "open", AmountCents: 125000, Currency: "USD"},
		})
	}))

	invoices, err := client.Invoices(context.Background(), liveBundle())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, int64(125000), invoices[0].AmountCents)
}

func TestClient_FetchFailureCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Projects(context.Background(), liveBundle())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeExternalFetch, apperrors.GetCode(err))
}

func TestClient_Client(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients/EXT-9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.ExternalClient{ID: "EXT-9", Name: "acme", Email: "a@acme.com"})
	}))

	got, err := client.Client(context.Background(), liveBundle(), "EXT-9")
	require.NoError(t, err)
	assert.Equal(t, "EXT-9", got.ID)
	assert.Equal(t, "acme", got.Name)
}

func TestClient_ClientNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.Client(context.Background(), liveBundle(), "EXT-404")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_ClientEmptyID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made")
	}))

	_, err := client.Client(context.Background(), liveBundle(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestClient_CreateClient(t *testing.T) {
	var gotBody model.CreateClientRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/clients", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.ExternalClient{ID: "EXT-9", Name: gotBody.Name, Email: gotBody.Email})
	}))

	created, err := client.CreateClient(context.Background(), liveBundle(), model.CreateClientRequest{
		Name:  "acme",
		Email: "a@acme.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "EXT-9", created.ID)
	assert.Equal(t, "acme", gotBody.Name)
	assert.Equal(t, "a@acme.com", gotBody.Email)
}

func TestClient_CreateClientFailureCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"duplicate client"}`))
	}))

	_, err := client.CreateClient(context.Background(), liveBundle(), model.CreateClientRequest{Name: "acme"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeExternalCreate, apperrors.GetCode(err))
}

func TestClient_CreateClientValidation(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made")
	}))

	_, err := client.CreateClient(context.Background(), liveBundle(), model.CreateClientRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestClient_TimeoutMapsToTimeoutCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Projects(context.Background(), liveBundle())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeTimeout, apperrors.GetCode(err))
}
