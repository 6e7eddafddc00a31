package queries

import (
	"context"
	"database/sql"
	"errors"

	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderByNumberQuery("ORD-0000000042")
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when no
// order matches the given ID or number.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var row *sql.Row
	var lookupKey string

	if query.OrderNumber() != "" {
		lookupKey = query.OrderNumber()
		row = h.db.WithContext(ctx).Raw(`
			SELECT `+orderColumns+`
			FROM orders
			WHERE order_number = ?
		`, query.OrderNumber()).Row()
	} else {
		lookupKey = query.ID().String()
		row = h.db.WithContext(ctx).Raw(`
			SELECT `+orderColumns+`
			FROM orders
			WHERE id = ?
		`, query.ID().Bytes()).Row()
	}

	orderRow, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", lookupKey)
		}
		return OrderResponse{}, err
	}

	return orderRow.toResponse()
}
