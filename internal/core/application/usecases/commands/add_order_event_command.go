package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrAddOrderEventCommandIsNotConstructed = errors.New(
		"AddOrderEventCommand must be created via NewAddOrderEventCommand constructor",
	)

	// ErrEventTrackingDisabled is returned when the engine configuration has
	// annotation tracking switched off. Status transitions are journaled
	// regardless; only caller-supplied annotations are gated.
	ErrEventTrackingDisabled = errors.New("order event tracking is disabled")
)

// AddOrderEventCommand represents a manual annotation against an order, not
// tied to any state transition. For example: "called customer".
type AddOrderEventCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	eventType string
	data      map[string]any
	note      string
	createdBy string

	guard guard.ConstructorGuard
}

// NewAddOrderEventCommand creates a command to append an annotation event.
// eventType defaults to "note" when empty; data, note and createdBy are
// optional.
func NewAddOrderEventCommand(
	orderID kernel.UUID,
	eventType string,
	data map[string]any,
	note, createdBy string,
) (AddOrderEventCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AddOrderEventCommand{}, err
	}

	if eventType == "" {
		eventType = "note"
	}

	return AddOrderEventCommand{
		orderID:   orderID,
		eventType: eventType,
		data:      data,
		note:      note,
		createdBy: createdBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderEventCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderEventCommandIsNotConstructed)
}

// OrderID returns the identifier of the annotated order.
func (c AddOrderEventCommand) OrderID() kernel.UUID {
	return c.orderID
}

// EventType returns the event's type tag.
func (c AddOrderEventCommand) EventType() string {
	return c.eventType
}

// Data returns the optional structured payload.
func (c AddOrderEventCommand) Data() map[string]any {
	return c.data
}

// Note returns the optional human annotation.
func (c AddOrderEventCommand) Note() string {
	return c.note
}

// CreatedBy returns the acting user recorded on the event.
func (c AddOrderEventCommand) CreatedBy() string {
	return c.createdBy
}
