package model

// Result carries the independently reported outcome of fetching one resource
// class during a sync. A failure in one class never suppresses another's data.
type Result[T any] struct {
	Data T
	Err  error
}

// OK reports whether the resource fetch succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// SyncReport is the partitioned outcome of one sync call. Each sync is a full
// replace of the caller's view of each resource class; no reconciliation
// against prior snapshots is performed.
type SyncReport struct {
	Projects Result[[]ExternalProject]
	Invoices Result[[]ExternalInvoice]
}
