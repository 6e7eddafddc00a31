package ports

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// OrderEventRepository defines the persistence contract for the append-only
// order event ledger. Entries are written once and never updated or deleted.
type OrderEventRepository interface {
	// Append durably stores a new ledger entry. When called inside a unit of
	// work the append commits or rolls back together with the order state
	// write it describes.
	Append(ctx context.Context, event *order.Event) error

	// ListByOrder returns every ledger entry for the order in ascending
	// createdAt order, ties broken by insertion order. The read is stable and
	// deterministic: repeated calls without intervening writes return
	// identical sequences.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Event, error)
}
