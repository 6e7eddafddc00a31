package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// AddOrderEventCommandHandler appends a caller-supplied annotation event to
// an order's ledger after confirming the order exists.
type AddOrderEventCommandHandler struct {
	uowFactory OrderUoWFactory
	settings   Settings
}

// NewAddOrderEventCommandHandler creates a handler for manual annotations.
func NewAddOrderEventCommandHandler(uowFactory OrderUoWFactory, settings Settings) AddOrderEventCommandHandler {
	return AddOrderEventCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
	}
}

// Handle appends the annotation. Fails with ErrEventTrackingDisabled when
// annotation tracking is off and with an object-not-found error if the order
// does not exist; ledger entries cannot exist without an order.
func (h *AddOrderEventCommandHandler) Handle(ctx context.Context, cmd AddOrderEventCommand) (*order.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.settings.TrackEvents {
		return nil, ErrEventTrackingDisabled
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	event, err := order.NewEvent(aggregate.ID(), cmd.EventType(), cmd.Data(), cmd.Note(), cmd.CreatedBy())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderEventRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}
