package identity

import "context"

// UnitOfWork groups the per-entity repositories and owns one explicit
// transaction lifecycle. At most one transaction may be active per
// instance; HasActiveTransaction must reflect this truthfully so that
// failure paths can decide whether a rollback is meaningful.
//
// Repositories returned by Companies and Users are materialized lazily
// and bound to the active transaction when one exists, otherwise to the
// base connection. The repositories themselves carry no transactional
// semantics.
type UnitOfWork interface {
	// Begin starts a new transaction. It is a fatal error to call
	// Begin while a transaction is already active.
	Begin(ctx context.Context) error

	// Commit flushes all pending writes and ends the transaction.
	// Store rejections (constraint violations, cancellation) propagate
	// to the caller.
	Commit(ctx context.Context) error

	// Rollback discards all pending writes and ends the transaction.
	// Calling Rollback with no active transaction is a caller error.
	Rollback(ctx context.Context) error

	// HasActiveTransaction reports whether a transaction is open
	HasActiveTransaction() bool

	// Companies returns the company repository
	Companies() CompanyRepository

	// Users returns the user repository
	Users() UserRepository
}

// UnitOfWorkFactory creates one UnitOfWork per request. A unit of
// work's transaction is owned exclusively by the invocation that
// opened it and is never shared across requests.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
