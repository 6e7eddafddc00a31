// Package eventrepo persists the append-only order event ledger.
// Entries are written once and never updated or deleted; an autoincrement
// sequence column keeps entries written in the same millisecond in
// insertion order.
package eventrepo

import (
	"encoding/json"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting ledger entries.
type EventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex"`
	EventType string
	Data      json.RawMessage `gorm:"type:jsonb"`
	Note      string
	CreatedBy string
	CreatedAt time.Time
}

// TableName specifies the database table name for ledger entries.
func (EventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(event *order.Event) (EventDTO, error) {
	data, err := json.Marshal(event.Data())
	if err != nil {
		return EventDTO{}, err
	}

	return EventDTO{
		ID:        event.ID().Bytes(),
		OrderID:   event.OrderID().Bytes(),
		EventType: event.Type(),
		Data:      data,
		Note:      event.Note(),
		CreatedBy: event.CreatedBy(),
		CreatedAt: event.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a ledger entry using RestoreEvent.
func toDomain(dto EventDTO) (*order.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if len(dto.Data) > 0 {
		if err = json.Unmarshal(dto.Data, &data); err != nil {
			return nil, err
		}
	}

	return order.RestoreEvent(id, orderID, dto.EventType, data, dto.Note, dto.CreatedBy, dto.CreatedAt)
}
