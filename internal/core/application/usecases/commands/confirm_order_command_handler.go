package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler applies the confirm transition to a pending
// order and journals the status change, in one transaction.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	hooks      Hooks
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, hooks Hooks) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		hooks:      hooks,
	}
}

// Handle confirms the order. Fails with an object-not-found error if the
// order does not exist and with ErrInvalidTransition if it is not pending;
// in both cases the stored order is left untouched.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := aggregate.Status()
	if err = aggregate.Confirm(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := order.NewEvent(aggregate.ID(), order.EventTypeStatusChanged, map[string]any{
		"from": from.String(),
		"to":   aggregate.Status().String(),
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

	if h.hooks.AfterConfirm != nil {
		h.hooks.AfterConfirm(ctx, aggregate)
	}

	return aggregate, nil
}
