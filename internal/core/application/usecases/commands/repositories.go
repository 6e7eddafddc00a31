// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// Every handler is one atomic unit of work: the order state write and the
// ledger append(s) describing it either all commit or all roll back, so a
// half-applied transition can never be observed.
package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderEventRepoFactory provides access to the event ledger within a transaction.
	OrderEventRepoFactory interface {
		OrderEventRepository() ports.OrderEventRepository
	}

	// SequenceRepoFactory provides access to persisted sequences within a transaction.
	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	// OrderUoW manages transactions for operations that mutate an order and
	// journal the mutation. Used by every handler except creation.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderEventRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW additionally exposes the sequence store so the order
	// number is allocated inside the same transaction as the order itself.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderEventRepoFactory
		SequenceRepoFactory
	}

	// CreateOrderUoWFactory creates new creation unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}
)

// Settings carries the engine configuration relevant to command handlers.
// Constructed once at composition time and passed by value; there is no
// ambient mutable configuration inside the core.
type Settings struct {
	// ConfirmOnPayment automatically confirms a pending order when its
	// payment status becomes paid, within the same unit of work.
	ConfirmOnPayment bool

	// CompleteOnFulfillment automatically advances a shipped order to
	// delivered when its fulfillment status becomes fulfilled. The policy
	// fires only from shipped, the single graph-legal hop.
	CompleteOnFulfillment bool

	// AllowEdit gates the update operation regardless of caller permission.
	AllowEdit bool

	// AllowCancel gates the cancel operation regardless of caller permission.
	AllowCancel bool

	// TrackEvents gates caller-supplied annotation events. Status transitions
	// are always journaled regardless of this flag.
	TrackEvents bool
}

// DefaultSettings returns the engine defaults: both auto-transitions on,
// all features enabled.
func DefaultSettings() Settings {
	return Settings{
		ConfirmOnPayment:      true,
		CompleteOnFulfillment: true,
		AllowEdit:             true,
		AllowCancel:           true,
		TrackEvents:           true,
	}
}

// Hooks are optional caller-supplied extension points. Nil hooks are skipped.
// BeforeCreate runs inside the creation unit of work and may veto it by
// returning an error; After* hooks run after a successful commit and cannot
// affect the outcome.
type Hooks struct {
	BeforeCreate func(ctx context.Context, o *order.Order) error
	AfterConfirm func(ctx context.Context, o *order.Order)
	AfterCancel  func(ctx context.Context, o *order.Order)
}
