package httpx

import (
	"context"
	"time"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
	"github.com/copperline/bizportal/internal/domain/model"
	apperrors "github.com/copperline/bizportal/internal/errors"
	"github.com/copperline/bizportal/internal/service"
)

// Test doubles shared by the handler and routing tests. They live in a
// non-test file so both white-box and black-box tests can use them, but are
// only referenced from _test.go files.

type fakeAuthService struct {
	sessions map[string]*domainauth.Session

	RegisterFunc   func(ctx context.Context, req model.CreatePrincipalRequest) (*model.Principal, error)
	LoginFunc      func(ctx context.Context, username, password string) (*domainauth.Session, error)
	UpdateRoleFunc func(ctx context.Context, id string, req model.UpdateRoleRequest) (*model.Principal, error)
	ListFunc       func(ctx context.Context, limit, offset int) ([]*model.Principal, error)
	GetFunc        func(ctx context.Context, id string) (*model.Principal, error)

	loggedOut []string
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{sessions: make(map[string]*domainauth.Session)}
}

// addSession registers a live session and returns its id.
func (f *fakeAuthService) addSession(id string, principal *domainauth.Principal) string {
	f.sessions[id] = &domainauth.Session{
		ID:        id,
		Principal: principal,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return id
}

func (f *fakeAuthService) GetSession(_ context.Context, sessionID string) (*domainauth.Session, error) {
	if s, ok := f.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, apperrors.Unauthenticated("no session")
}

func (f *fakeAuthService) Register(ctx context.Context, req model.CreatePrincipalRequest) (*model.Principal, error) {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, req)
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return &model.Principal{ID: "p-new", Username: req.Username, Email: req.Email, Role: domainauth.RolePending}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (*domainauth.Session, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, username, password)
	}
	return nil, apperrors.Unauthenticated("invalid username or password")
}

func (f *fakeAuthService) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeAuthService) UpdateRole(ctx context.Context, id string, req model.UpdateRoleRequest) (*model.Principal, error) {
	if f.UpdateRoleFunc != nil {
		return f.UpdateRoleFunc(ctx, id, req)
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return &model.Principal{ID: id, Role: req.Role, ExternalClientID: req.ExternalClientID}, nil
}

func (f *fakeAuthService) GetPrincipal(ctx context.Context, id string) (*model.Principal, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return nil, apperrors.NotFound("principal not found")
}

func (f *fakeAuthService) ListPrincipals(ctx context.Context, limit, offset int) ([]*model.Principal, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, limit, offset)
	}
	return nil, nil
}

type fakeConnectionService struct {
	AuthorizationURLValue string
	CompleteFunc          func(ctx context.Context, sessionID, code string) error
	DisconnectFunc        func(ctx context.Context, sessionID string) error
	StatusFunc            func(ctx context.Context, sessionID string) (service.ConnectionStatus, error)
}

func (f *fakeConnectionService) AuthorizationURL() string {
	if f.AuthorizationURLValue != "" {
		return f.AuthorizationURLValue
	}
	return "https://provider.example.com/oauth/authorize?client_id=test"
}

func (f *fakeConnectionService) CompleteAuthorization(ctx context.Context, sessionID, code string) error {
	if f.CompleteFunc != nil {
		return f.CompleteFunc(ctx, sessionID, code)
	}
	return nil
}

func (f *fakeConnectionService) Disconnect(ctx context.Context, sessionID string) error {
	if f.DisconnectFunc != nil {
		return f.DisconnectFunc(ctx, sessionID)
	}
	return nil
}

func (f *fakeConnectionService) Status(ctx context.Context, sessionID string) (service.ConnectionStatus, error) {
	if f.StatusFunc != nil {
		return f.StatusFunc(ctx, sessionID)
	}
	return service.ConnectionStatus{}, nil
}

type fakeSyncService struct {
	RunFunc func(ctx context.Context, sessionID string) (*model.SyncReport, error)
}

func (f *fakeSyncService) Run(ctx context.Context, sessionID string) (*model.SyncReport, error) {
	if f.RunFunc != nil {
		return f.RunFunc(ctx, sessionID)
	}
	return &model.SyncReport{}, nil
}

type fakeInquiryService struct {
	SubmitFunc  func(ctx context.Context, req *model.CreateInquiryRequest) (*model.PendingInquiry, error)
	ListFunc    func(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PendingInquiry, error)
	GetFunc     func(ctx context.Context, id int64) (*model.PendingInquiry, error)
	ApproveFunc func(ctx context.Context, sessionID string, inquiryID int64) (*model.PendingInquiry, error)
}

func (f *fakeInquiryService) Submit(ctx context.Context, req *model.CreateInquiryRequest) (*model.PendingInquiry, error) {
	if f.SubmitFunc != nil {
		return f.SubmitFunc(ctx, req)
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return &model.PendingInquiry{ID: 1, Username: req.Username, Email: req.Email, Status: model.InquiryStatusPending}, nil
}

func (f *fakeInquiryService) List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PendingInquiry, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, opts)
	}
	return nil, nil
}

func (f *fakeInquiryService) GetByID(ctx context.Context, id int64) (*model.PendingInquiry, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	return nil, apperrors.NotFoundf("inquiry %d not found", id)
}

func (f *fakeInquiryService) Approve(ctx context.Context, sessionID string, inquiryID int64) (*model.PendingInquiry, error) {
	if f.ApproveFunc != nil {
		return f.ApproveFunc(ctx, sessionID, inquiryID)
	}
	return nil, apperrors.NotFoundf("inquiry %d not found", inquiryID)
}

type fakeClientLookup struct {
	ClientFunc func(ctx context.Context, sessionID, externalID string) (*model.ExternalClient, error)
}

func (f *fakeClientLookup) Client(ctx context.Context, sessionID, externalID string) (*model.ExternalClient, error) {
	if f.ClientFunc != nil {
		return f.ClientFunc(ctx, sessionID, externalID)
	}
	return &model.ExternalClient{ID: externalID}, nil
}
