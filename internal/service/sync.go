package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/copperline/bizportal/internal/domain/model"
	"github.com/copperline/bizportal/internal/observability/metrics"
	"github.com/copperline/bizportal/internal/observability/statsd"
	"github.com/copperline/bizportal/internal/ports"
)

// SyncServiceOptions groups dependencies for SyncService.
type SyncServiceOptions struct {
	Connection *ConnectionService
	Accounting ports.AccountingClient
	Metrics    statsd.Sink // optional
}

// SyncService pulls the connected account's view of the accounting system.
// Each run fetches every resource class concurrently and reports their
// outcomes independently: one class failing never hides another's data.
type SyncService struct {
	connection *ConnectionService
	accounting ports.AccountingClient
	metrics    statsd.Sink
}

// NewSyncService constructs a new SyncService.
func NewSyncService(opts SyncServiceOptions) *SyncService {
	if opts.Connection == nil {
		panic("SyncService requires a connection service")
	}
	if opts.Accounting == nil {
		panic("SyncService requires an accounting client")
	}
	return &SyncService{
		connection: opts.Connection,
		accounting: opts.Accounting,
		metrics:    opts.Metrics,
	}
}

func (s *SyncService) emitFetch(resource string, start time.Time, err error) {
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.EmitSyncOutcome(s.metrics, metrics.SyncMetric{
		Resource: resource,
		Result:   result,
		Duration: time.Since(start),
		Err:      err,
	})
}

// Run performs one sync for the session. The credential is resolved exactly
// once up front; without one, no fetch is attempted and the not-connected
// error surfaces as the run's single outcome.
func (s *SyncService) Run(ctx context.Context, sessionID string) (*model.SyncReport, error) {
	bundle, err := s.connection.ResolveToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var report model.SyncReport
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		projects, err := s.accounting.Projects(ctx, bundle)
		s.emitFetch("projects", start, err)
		report.Projects = model.Result[[]model.ExternalProject]{Data: projects, Err: err}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		invoices, err := s.accounting.Invoices(ctx, bundle)
		s.emitFetch("invoices", start, err)
		report.Invoices = model.Result[[]model.ExternalInvoice]{Data: invoices, Err: err}
		return nil
	})
	// Fetch errors live in the report, so the group itself never fails.
	_ = g.Wait()

	return &report, nil
}

// Client fetches one client record from the accounting system for the
// session's connected account.
func (s *SyncService) Client(ctx context.Context, sessionID, externalID string) (*model.ExternalClient, error) {
	bundle, err := s.connection.ResolveToken(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.accounting.Client(ctx, bundle, externalID)
}
