package order

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not created
// through the NewEvent or RestoreEvent factory methods.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event types written by the engine. Callers may also supply their own type
// tags through the add-event operation.
const (
	// EventTypeCreated is appended exactly once, when the order is created.
	EventTypeCreated = "created"

	// EventTypeStatusChanged accompanies every successful status transition.
	EventTypeStatusChanged = "status_changed"

	// EventTypePaymentUpdated records a standalone payment status change.
	EventTypePaymentUpdated = "payment_updated"

	// EventTypeFulfillmentUpdated records a standalone fulfillment status change.
	EventTypeFulfillmentUpdated = "fulfillment_updated"

	// EventTypeUpdated records a generic field patch that did not change status.
	EventTypeUpdated = "updated"

	// EventTypeNote is the default tag for manual annotations.
	EventTypeNote = "note"
)

// Event is an immutable ledger entry recording something that happened to an
// order: a state change written by the engine or a manual annotation supplied
// by a caller.
//
// Event follows these invariants:
//   - Must reference an existing order; entries cannot exist without one
//   - Never mutated or deleted once appended
//   - CreatedAt is monotonically non-decreasing within an order's sequence
//
// All fields are private; once constructed an Event can only be read.
type Event struct {
	// id is the unique identifier for the ledger entry
	id kernel.UUID

	// orderID is the owning order
	orderID kernel.UUID

	// eventType is a short string tag, such as "status_changed"
	eventType string

	// data is the structured payload describing the change
	data map[string]any

	// note is an optional human annotation
	note string

	// createdBy is an optional actor identifier
	createdBy string

	// createdAt is the append timestamp
	createdAt time.Time

	// isConstructed ensures the event was created via a constructor
	isConstructed bool
}

// NewEvent creates a ledger entry for the given order with a fresh identifier
// and the current UTC timestamp.
//
// Parameters:
//   - orderID: owning order (must be a valid UUID)
//   - eventType: short string tag (required)
//   - data: structured payload describing the change (may be nil)
//   - note: optional human annotation
//   - createdBy: optional actor identifier
func NewEvent(orderID kernel.UUID, eventType string, data map[string]any, note, createdBy string) (*Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}

	return &Event{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		eventType:     eventType,
		data:          cloneData(data),
		note:          note,
		createdBy:     createdBy,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistence. Unlike NewEvent it
// accepts the stored identifier and timestamp as-is.
func RestoreEvent(
	id kernel.UUID,
	orderID kernel.UUID,
	eventType string,
	data map[string]any,
	note, createdBy string,
	createdAt time.Time,
) (*Event, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}

	return &Event{
		id:            id,
		orderID:       orderID,
		eventType:     eventType,
		data:          cloneData(data),
		note:          note,
		createdBy:     createdBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the ledger entry's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// OrderID returns the owning order's identifier.
func (e *Event) OrderID() kernel.UUID {
	return e.orderID
}

// Type returns the event's type tag.
func (e *Event) Type() string {
	return e.eventType
}

// Data returns a copy of the structured payload. The internal payload stays
// immutable no matter what the caller does with the returned map.
func (e *Event) Data() map[string]any {
	return cloneData(e.data)
}

// Note returns the human annotation, or "" if not set.
func (e *Event) Note() string {
	return e.note
}

// CreatedBy returns the actor identifier, or "" if not set.
func (e *Event) CreatedBy() string {
	return e.createdBy
}

// CreatedAt returns the append timestamp.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	clone := make(map[string]any, len(data))
	for k, v := range data {
		clone[k] = v
	}
	return clone
}
