package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)

	// ErrEditingDisabled is returned when the engine configuration has order
	// editing switched off, regardless of caller permission.
	ErrEditingDisabled = errors.New("order editing is disabled")
)

// UpdateOrderPatch carries the fields an update may change. Nil pointers mean
// "leave unchanged". The patch surface is deliberately narrow: status,
// paymentStatus, fulfillmentStatus, notes and metadata; everything else on an
// order is immutable after creation.
type UpdateOrderPatch struct {
	Status            *order.Status
	PaymentStatus     *order.PaymentStatus
	FulfillmentStatus *order.FulfillmentStatus
	Notes             *string
	Metadata          map[string]any
}

// isEmpty reports whether the patch changes nothing.
func (p UpdateOrderPatch) isEmpty() bool {
	return p.Status == nil &&
		p.PaymentStatus == nil &&
		p.FulfillmentStatus == nil &&
		p.Notes == nil &&
		len(p.Metadata) == 0
}

// UpdateOrderCommand represents a generic field patch against an order.
// A status value in the patch is routed through the same transition legality
// check as the confirm and cancel actions.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	patch     UpdateOrderPatch
	createdBy string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to patch the given order.
// Rejects an empty patch and any invalid enum value up front.
func NewUpdateOrderCommand(orderID kernel.UUID, patch UpdateOrderPatch, createdBy string) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}
	if patch.isEmpty() {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("patch")
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}
	if patch.PaymentStatus != nil {
		if err := patch.PaymentStatus.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}
	if patch.FulfillmentStatus != nil {
		if err := patch.FulfillmentStatus.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}

	return UpdateOrderCommand{
		orderID:   orderID,
		patch:     patch,
		createdBy: createdBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to patch.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Patch returns the requested field changes.
func (c UpdateOrderCommand) Patch() UpdateOrderPatch {
	return c.patch
}

// CreatedBy returns the acting user recorded on the ledger events.
func (c UpdateOrderCommand) CreatedBy() string {
	return c.createdBy
}
