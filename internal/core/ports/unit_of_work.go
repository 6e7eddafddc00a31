package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Order state writes and their ledger appends happen inside one unit of work,
// so either all of them become visible or none do.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// OrderEventRepository returns an OrderEventRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderEventRepository() OrderEventRepository

	// SequenceRepository returns a SequenceRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	SequenceRepository() SequenceRepository
}
