package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)

	// ErrCancellationDisabled is returned when the engine configuration has
	// cancellation switched off, regardless of caller permission.
	ErrCancellationDisabled = errors.New("order cancellation is disabled")
)

// CancelOrderCommand represents a request to cancel an order. The optional
// reason is captured on the ledger event, not on the order record itself.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	reason    string
	createdBy string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel the given order.
// reason and createdBy are optional.
func NewCancelOrderCommand(orderID kernel.UUID, reason, createdBy string) (CancelOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderID:   orderID,
		reason:    reason,
		createdBy: createdBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the optional cancellation reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// CreatedBy returns the acting user recorded on the ledger event.
func (c CancelOrderCommand) CreatedBy() string {
	return c.createdBy
}
