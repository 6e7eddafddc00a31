package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to create a new commerce order.
// Encapsulates the buyer contact, line items and optional postal data.
// The order number and identifiers are allocated by the handler, not the caller.
//
// Example:
//
//	item, _ := order.NewItem("Widget", "", "", 2, 10)
//	cmd, err := NewCreateOrderCommand(nil, "a@b.com", "USD", []order.Item{item}, &shipping, nil, "ops")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created", created.OrderNumber())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID          *kernel.UUID
	email           string
	currency        string
	items           []order.Item
	shippingAddress *order.Address
	billingAddress  *order.Address
	createdBy       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that email is present and at least one item is supplied; items
// and addresses must already be constructed domain value objects. userID is
// nil for guest orders; currency may be empty to use the engine default;
// createdBy optionally names the acting user for the ledger.
func NewCreateOrderCommand(
	userID *kernel.UUID,
	email string,
	currency string,
	items []order.Item,
	shippingAddress *order.Address,
	billingAddress *order.Address,
	createdBy string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		userID:          userID,
		currency:        currency,
		shippingAddress: shippingAddress,
		billingAddress:  billingAddress,
		createdBy:       createdBy,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setEmail(email),
		orderCommand.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// UserID returns the owning user's ID, or nil for guest orders.
func (c CreateOrderCommand) UserID() *kernel.UUID {
	return c.userID
}

// Email returns the buyer contact address.
func (c CreateOrderCommand) Email() string {
	return c.email
}

// Currency returns the requested currency code, or "" for the engine default.
func (c CreateOrderCommand) Currency() string {
	return c.currency
}

// Items returns the order line items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// ShippingAddress returns the optional delivery address.
func (c CreateOrderCommand) ShippingAddress() *order.Address {
	return c.shippingAddress
}

// BillingAddress returns the optional billing address.
func (c CreateOrderCommand) BillingAddress() *order.Address {
	return c.billingAddress
}

// CreatedBy returns the acting user recorded on the creation event.
func (c CreateOrderCommand) CreatedBy() string {
	return c.createdBy
}

func (c *CreateOrderCommand) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	c.email = email
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
