package queries

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var (
	ErrGetOrderEventsQueryIsNotConstructed = errors.New(
		"GetOrderEventsQuery must be created via NewGetOrderEventsQuery constructor",
	)
)

// GetOrderEventsQuery retrieves the full event ledger of a single order,
// oldest entry first.
//
// Example:
//
//	query, err := NewGetOrderEventsQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	events, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order history: %w", err)
//	}
//
//	for _, event := range events {
//	    fmt.Printf("%s %s\n", event.CreatedAt, event.Type)
//	}
type GetOrderEventsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderEventsQuery creates a query for the given order's ledger.
func NewGetOrderEventsQuery(orderID kernel.UUID) (GetOrderEventsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderEventsQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderEventsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order whose ledger is requested.
func (q GetOrderEventsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEventsQueryIsNotConstructed)
}
