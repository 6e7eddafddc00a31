package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrConfirmOrderCommandIsNotConstructed = errors.New(
		"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
	)
)

// ConfirmOrderCommand represents a request to confirm a pending order.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	createdBy string

	guard guard.ConstructorGuard
}

// NewConfirmOrderCommand creates a command to confirm the given order.
// createdBy optionally names the acting user for the ledger.
func NewConfirmOrderCommand(orderID kernel.UUID, createdBy string) (ConfirmOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return ConfirmOrderCommand{
		orderID:   orderID,
		createdBy: createdBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to confirm.
func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CreatedBy returns the acting user recorded on the ledger event.
func (c ConfirmOrderCommand) CreatedBy() string {
	return c.createdBy
}
