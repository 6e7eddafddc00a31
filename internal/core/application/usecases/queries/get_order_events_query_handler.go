package queries

import (
	"context"
	"encoding/json"
	"time"

	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderEventsQueryHandler reads an order's event ledger from the database.
// Entries come back in chronological order; the insertion sequence breaks
// ties between entries written in the same transaction.
type GetOrderEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEventsQueryHandler creates a handler for ledger queries.
func NewGetOrderEventsQueryHandler(db *gorm.DB) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the
// order itself does not exist; an existing order with no recorded events
// yields an empty slice.
func (h GetOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEventsQuery,
) ([]EventResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(1) FROM orders WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	events := make([]EventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			event_type,
			data,
			note,
			created_by,
			created_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY created_at, seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, orderID uuid.UUID
		var eventType, note, createdBy string
		var data []byte
		var createdAt time.Time

		err = rows.Scan(&id, &orderID, &eventType, &data, &note, &createdBy, &createdAt)
		if err != nil {
			return nil, err
		}

		event := EventResponse{
			ID:        id.String(),
			OrderID:   orderID.String(),
			Type:      eventType,
			Note:      note,
			CreatedBy: createdBy,
			CreatedAt: createdAt,
		}

		if len(data) > 0 {
			if err = json.Unmarshal(data, &event.Data); err != nil {
				return nil, err
			}
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
