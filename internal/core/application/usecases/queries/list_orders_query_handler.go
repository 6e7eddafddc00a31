package queries

import (
	"context"
	"strings"

	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads filtered order pages from the database.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery(ListOrdersFilter{Status: "pending"})
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. Status names in the filter are translated
// to their stored enum values; unknown names surface as invalid-value
// errors rather than empty pages.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	filter := query.Filter()

	where := make([]string, 0)
	args := make([]any, 0)

	if filter.UserID != "" {
		userID, err := uuid.Parse(filter.UserID)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}
		where = append(where, "user_id = ?")
		args = append(args, userID)
	}

	if filter.Status != "" {
		status, err := order.ParseStatus(filter.Status)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}
		where = append(where, "status = ?")
		args = append(args, int(status))
	}

	if filter.PaymentStatus != "" {
		paymentStatus, err := order.ParsePaymentStatus(filter.PaymentStatus)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}
		where = append(where, "payment_status = ?")
		args = append(args, int(paymentStatus))
	}

	if filter.FulfillmentStatus != "" {
		fulfillmentStatus, err := order.ParseFulfillmentStatus(filter.FulfillmentStatus)
		if err != nil {
			return ListOrdersQueryResponse{}, err
		}
		where = append(where, "fulfillment_status = ?")
		args = append(args, int(fulfillmentStatus))
	}

	if filter.Search != "" {
		where = append(where, "(order_number ILIKE ? OR email ILIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	if filter.DateFrom != nil {
		where = append(where, "created_at >= ?")
		args = append(args, *filter.DateFrom)
	}

	if filter.DateTo != nil {
		where = append(where, "created_at <= ?")
		args = append(args, *filter.DateTo)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(1) FROM orders"+whereClause, args...).
		Scan(&total).Error
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	// SortBy is checked against sortableColumns at construction time, so
	// interpolating the column name here is safe.
	orderClause := " ORDER BY " + sortableColumns[filter.SortBy] + " " + direction + ", id"

	pageArgs := append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders`+whereClause+orderClause+`
		LIMIT ? OFFSET ?
	`, pageArgs...).Rows()
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		row, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return ListOrdersQueryResponse{}, scanErr
		}

		resp, respErr := row.toResponse()
		if respErr != nil {
			return ListOrdersQueryResponse{}, respErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	return ListOrdersQueryResponse{
		Orders: orders,
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}, nil
}
