package ports

import "context"

// SequenceName identifies a named persisted counter.
const (
	// OrderNumberSequence backs the order number generator.
	OrderNumberSequence = "order_number"
)

// SequenceRepository provides atomically incrementing persisted counters.
// Next must be serialized across the whole cluster, not per process: two
// concurrent calls for the same name must never observe the same value.
type SequenceRepository interface {
	// Next increments the named counter and returns its new value.
	// The first call for a name returns 1.
	Next(ctx context.Context, name string) (int64, error)
}
