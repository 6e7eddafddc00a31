package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// CancelOrderCommandHandler applies the cancel transition and journals the
// status change with the caller's reason, in one transaction.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	settings   Settings
	hooks      Hooks
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, settings Settings, hooks Hooks) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		hooks:      hooks,
	}
}

// Handle cancels the order. Fails with ErrCancellationDisabled when the
// feature is off, an object-not-found error if the order does not exist, and
// ErrInvalidTransition if the order has already shipped or reached a final
// state; the stored order is left untouched on every failure.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.settings.AllowCancel {
		return nil, ErrCancellationDisabled
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
	if err = aggregate.Cancel(); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	data := map[string]any{
		"from": from.String(),
		"to":   aggregate.Status().String(),
	}
	if cmd.Reason() != "" {
		data["reason"] = cmd.Reason()
	}

	event, err := order.NewEvent(aggregate.ID(), order.EventTypeStatusChanged, data, cmd.Reason(), cmd.CreatedBy())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderEventRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.hooks.AfterCancel != nil {
		h.hooks.AfterCancel(ctx, aggregate)
	}

	return aggregate, nil
}
