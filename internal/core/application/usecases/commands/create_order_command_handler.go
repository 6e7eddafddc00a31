package commands

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Allocates the order number from the persisted sequence, creates the order
// in pending status and journals a "created" ledger event, all within one
// transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, "ORD", 8, "USD", Hooks{})
//	cmd, _ := NewCreateOrderCommand(nil, "a@b.com", "", items, nil, nil, "")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created.OrderNumber() matches ^ORD\d{8}$
type CreateOrderCommandHandler struct {
	uowFactory      CreateOrderUoWFactory
	numberPrefix    string
	numberLength    int
	defaultCurrency string
	hooks           Hooks
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a CreateOrderUoWFactory so the number allocation, the order insert
// and the ledger append share one transaction.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	numberPrefix string,
	numberLength int,
	defaultCurrency string,
	hooks Hooks,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:      uowFactory,
		numberPrefix:    numberPrefix,
		numberLength:    numberLength,
		defaultCurrency: defaultCurrency,
		hooks:           hooks,
	}
}

// Handle processes the order creation command.
// Returns the created order on success. On any failure the whole unit of
// work rolls back: no order without its "created" event, and no consumed
// number is ever attached to two orders.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	generator, err := services.NewOrderNumberGenerator(h.numberPrefix, h.numberLength, uow.SequenceRepository())
	if err != nil {
		return nil, err
	}

	orderNumber, err := generator.Next(ctx)
	if err != nil {
		return nil, err
	}

	currency := cmd.Currency()
	if currency == "" {
		currency = h.defaultCurrency
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		cmd.UserID(),
		cmd.Email(),
		currency,
		cmd.Items(),
		cmd.ShippingAddress(),
		cmd.BillingAddress(),
	)
	if err != nil {
		return nil, err
	}

	if h.hooks.BeforeCreate != nil {
		if err = h.hooks.BeforeCreate(ctx, newOrder); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	event, err := order.NewEvent(newOrder.ID(), order.EventTypeCreated, map[string]any{
		"order_number": newOrder.OrderNumber(),
		"status":       newOrder.Status().String(),
	}, "", cmd.CreatedBy())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderEventRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
