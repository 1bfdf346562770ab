package auth

// Package auth contains simple hand-written test doubles for auth and
// accounting ports. These are lightweight and suitable for unit tests
// without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	"github.com/copperline/bizportal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
	_ ports.TokenStore       = (*MemoryTokenStore)(nil)
	_ ports.Connector        = (*MockConnector)(nil)
	_ ports.AccountingClient = (*MockAccountingClient)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// MemoryTokenStore is an in-memory token store for unit tests. Optional
// error hooks simulate storage failures.
type MemoryTokenStore struct {
	mu      sync.Mutex
	bundles map[string]domainauth.TokenBundle

	GetErr   error
	PutErr   error
	ClearErr error
}

// NewMemoryTokenStore creates a new in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		bundles: make(map[string]domainauth.TokenBundle),
	}
}

func (m *MemoryTokenStore) Get(_ context.Context, sessionID string) (domainauth.TokenBundle, bool, error) {
	if m.GetErr != nil {
		return domainauth.TokenBundle{}, false, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	bundle, ok := m.bundles[sessionID]
	return bundle, ok, nil
}

func (m *MemoryTokenStore) Put(_ context.Context, sessionID string, bundle domainauth.TokenBundle) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bundles[sessionID] = bundle
	return nil
}

func (m *MemoryTokenStore) Clear(_ context.Context, sessionID string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bundles, sessionID)
	return nil
}

// MockConnector simulates the accounting OAuth connector with overridable
// behavior and call counting.
type MockConnector struct {
	AuthorizationURLValue string
	ExchangeFunc          func(ctx context.Context, code string) (domainauth.TokenBundle, error)
	RefreshFunc           func(ctx context.Context, bundle domainauth.TokenBundle) (domainauth.TokenBundle, error)

	mu           sync.Mutex
	exchangeN    int
	refreshN     int
	DefaultToken domainauth.TokenBundle
}

// NewMockConnector creates a MockConnector with sensible defaults.
func NewMockConnector() *MockConnector {
	return &MockConnector{
		AuthorizationURLValue: "https://mock-provider/oauth/authorize?client_id=test",
	}
}

func (m *MockConnector) AuthorizationURL() string {
	return m.AuthorizationURLValue
}

func (m *MockConnector) Exchange(ctx context.Context, code string) (domainauth.TokenBundle, error) {
	m.mu.Lock()
	m.exchangeN++
	m.mu.Unlock()
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return m.DefaultToken, nil
}

func (m *MockConnector) Refresh(ctx context.Context, bundle domainauth.TokenBundle) (domainauth.TokenBundle, error) {
	m.mu.Lock()
	m.refreshN++
	m.mu.Unlock()
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, bundle)
	}
	return m.DefaultToken, nil
}

// ExchangeCalls reports how many times Exchange was invoked.
func (m *MockConnector) ExchangeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchangeN
}

// RefreshCalls reports how many times Refresh was invoked.
func (m *MockConnector) RefreshCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshN
}

// MockAccountingClient simulates the accounting REST API with overridable
// behavior per resource.
type MockAccountingClient struct {
	ProjectsFunc     func(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalProject, error)
	InvoicesFunc     func(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalInvoice, error)
	ClientFunc       func(ctx context.Context, bundle domainauth.TokenBundle, externalID string) (*model.ExternalClient, error)
	CreateClientFunc func(ctx context.Context, bundle domainauth.TokenBundle, req model.CreateClientRequest) (*model.ExternalClient, error)

	mu            sync.Mutex
	createClientN int
}

// NewMockAccountingClient creates an empty MockAccountingClient.
func NewMockAccountingClient() *MockAccountingClient {
	return &MockAccountingClient{}
}

func (m *MockAccountingClient) Projects(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalProject, error) {
	if m.ProjectsFunc != nil {
		return m.ProjectsFunc(ctx, bundle)
	}
	return nil, nil
}

func (m *MockAccountingClient) Invoices(ctx context.Context, bundle domainauth.TokenBundle) ([]model.ExternalInvoice, error) {
	if m.InvoicesFunc != nil {
		return m.InvoicesFunc(ctx, bundle)
	}
	return nil, nil
}

func (m *MockAccountingClient) Client(ctx context.Context, bundle domainauth.TokenBundle, externalID string) (*model.ExternalClient, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(ctx, bundle, externalID)
	}
	return &model.ExternalClient{ID: externalID}, nil
}

func (m *MockAccountingClient) CreateClient(ctx context.Context, bundle domainauth.TokenBundle, req model.CreateClientRequest) (*model.ExternalClient, error) {
	m.mu.Lock()
	m.createClientN++
	m.mu.Unlock()
	if m.CreateClientFunc != nil {
		return m.CreateClientFunc(ctx, bundle, req)
	}
	return &model.ExternalClient{ID: "EXT-1", Name: req.Name, Email: req.Email}, nil
}

// CreateClientCalls reports how many times CreateClient was invoked.
func (m *MockAccountingClient) CreateClientCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createClientN
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// ErrEmptyID is returned when an entity is stored without an ID.
type emptyIDError struct{}

func (emptyIDError) Error() string { return "session ID cannot be empty" }

var ErrEmptyID error = emptyIDError{}
