package ports

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// Sort directions accepted by OrderFilter.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// OrderFilter narrows and pages an order listing. Zero values mean "no
// constraint"; Page and Limit are normalized by the repository when zero.
// Callers without elevated read permission are expected to pre-scope UserID
// before the filter reaches the repository.
type OrderFilter struct {
	UserID            *kernel.UUID
	Status            *order.Status
	PaymentStatus     *order.PaymentStatus
	FulfillmentStatus *order.FulfillmentStatus

	// Search matches order number or contact email, case-insensitive.
	Search string

	// DateFrom and DateTo bound createdAt (inclusive).
	DateFrom *time.Time
	DateTo   *time.Time

	// SortBy is a column key (created_at, updated_at, order_number);
	// SortOrder is SortAsc or SortDesc.
	SortBy    string
	SortOrder string

	Page  int
	Limit int
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// A duplicate order number is reported as a version-conflict error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic version check: if a concurrent writer has persisted a newer
	// version since this aggregate was loaded, Update fails with a
	// version-conflict error and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable order number.
	GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error)

	// Query returns the orders matching the filter plus the total match count
	// before pagination.
	Query(ctx context.Context, filter OrderFilter) ([]*order.Order, int64, error)
}
