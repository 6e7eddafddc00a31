package queries

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByNumberQuery constructor",
	)
)

// GetOrderQuery retrieves a single order either by its ID or by its
// human-readable order number.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", resp.OrderNumber, resp.Status)
type GetOrderQuery struct {
	id          kernel.UUID
	orderNumber string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query that looks an order up by its ID.
func NewGetOrderQuery(id kernel.UUID) (GetOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("id")
	}

	return GetOrderQuery{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderByNumberQuery creates a query that looks an order up by its
// order number, e.g. "ORD-0000000042".
func NewGetOrderByNumberQuery(orderNumber string) (GetOrderQuery, error) {
	if orderNumber == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderNumber")
	}

	return GetOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ID returns the order identifier, empty when the query is by number.
func (q GetOrderQuery) ID() kernel.UUID {
	return q.id
}

// OrderNumber returns the order number, empty when the query is by ID.
func (q GetOrderQuery) OrderNumber() string {
	return q.orderNumber
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}
