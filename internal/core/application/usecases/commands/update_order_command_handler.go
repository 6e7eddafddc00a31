package commands

import (
	"context"

	"commerce/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler applies a field patch to an order, runs the
// configured auto-transitions, and journals every change, in one transaction.
//
// Event ordering within the transaction is deterministic:
//
//	payment_updated, then its auto-confirm status_changed if triggered,
//	fulfillment_updated, then its auto-deliver status_changed if triggered,
//	status_changed for an explicit status in the patch,
//	updated for notes/metadata changes.
//
// A rejected status change rolls the whole patch back: the stored order and
// its ledger are left exactly as they were.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	settings   Settings
}

// NewUpdateOrderCommandHandler creates a handler for order patch operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory, settings Settings) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
	}
}

// Handle processes the patch. Fails with ErrEditingDisabled when editing is
// off, an object-not-found error if the order does not exist, and
// ErrInvalidTransition for an illegal status edge.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.settings.AllowEdit {
		return nil, ErrEditingDisabled
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

	events, err := h.applyPatch(aggregate, cmd.Patch(), cmd.CreatedBy())
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		// Nothing changed; skip the write entirely.
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return aggregate, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	eventRepo := uow.OrderEventRepository()
	for _, event := range events {
		if err = eventRepo.Append(ctx, event); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// applyPatch mutates the aggregate according to the patch and returns the
// ledger events describing each change, in the order they were applied.
func (h *UpdateOrderCommandHandler) applyPatch(
	aggregate *order.Order,
	patch UpdateOrderPatch,
	createdBy string,
) ([]*order.Event, error) {
	events := make([]*order.Event, 0, 4)

	appendEvent := func(eventType string, data map[string]any) error {
		event, err := order.NewEvent(aggregate.ID(), eventType, data, "", createdBy)
		if err != nil {
			return err
		}
		events = append(events, event)
		return nil
	}

	if patch.PaymentStatus != nil && *patch.PaymentStatus != aggregate.PaymentStatus() {
		from := aggregate.PaymentStatus()
		if err := aggregate.SetPaymentStatus(*patch.PaymentStatus); err != nil {
			return nil, err
		}
		if err := appendEvent(order.EventTypePaymentUpdated, map[string]any{
			"from": from.String(),
			"to":   aggregate.PaymentStatus().String(),
		}); err != nil {
			return nil, err
		}

		if h.settings.ConfirmOnPayment &&
			aggregate.PaymentStatus() == order.PaymentPaid &&
			aggregate.Status() == order.StatusPending {
			statusFrom := aggregate.Status()
			if err := aggregate.Confirm(); err != nil {
				return nil, err
			}
			if err := appendEvent(order.EventTypeStatusChanged, map[string]any{
				"from": statusFrom.String(),
				"to":   aggregate.Status().String(),
				"auto": "confirm_on_payment",
			}); err != nil {
				return nil, err
			}
		}
	}

	if patch.FulfillmentStatus != nil && *patch.FulfillmentStatus != aggregate.FulfillmentStatus() {
		from := aggregate.FulfillmentStatus()
		if err := aggregate.SetFulfillmentStatus(*patch.FulfillmentStatus); err != nil {
			return nil, err
		}
		if err := appendEvent(order.EventTypeFulfillmentUpdated, map[string]any{
			"from": from.String(),
			"to":   aggregate.FulfillmentStatus().String(),
		}); err != nil {
			return nil, err
		}

		// The auto-advance fires only from shipped, the single graph-legal hop
		// to delivered.
		if h.settings.CompleteOnFulfillment &&
			aggregate.FulfillmentStatus() == order.FulfillmentFulfilled &&
			aggregate.Status() == order.StatusShipped {
			statusFrom := aggregate.Status()
			if err := aggregate.ChangeStatus(order.StatusDelivered); err != nil {
				return nil, err
			}
			if err := appendEvent(order.EventTypeStatusChanged, map[string]any{
				"from": statusFrom.String(),
				"to":   aggregate.Status().String(),
				"auto": "complete_on_fulfillment",
			}); err != nil {
				return nil, err
			}
		}
	}

	// An explicit status always goes through the graph, even when the target
	// equals the current status: self-edges are not adjacent, so patching a
	// cancelled order to cancelled fails instead of committing as a no-op.
	if patch.Status != nil {
		from := aggregate.Status()
		if err := aggregate.ChangeStatus(*patch.Status); err != nil {
			return nil, err
		}
		if err := appendEvent(order.EventTypeStatusChanged, map[string]any{
			"from": from.String(),
			"to":   aggregate.Status().String(),
		}); err != nil {
			return nil, err
		}
	}

	changes := make(map[string]any)
	if patch.Notes != nil && *patch.Notes != aggregate.Notes() {
		changes["notes"] = map[string]any{"from": aggregate.Notes(), "to": *patch.Notes}
		aggregate.SetNotes(*patch.Notes)
	}
	if len(patch.Metadata) > 0 {
		changes["metadata"] = patch.Metadata
		aggregate.MergeMetadata(patch.Metadata)
	}
	if len(changes) > 0 {
		if err := appendEvent(order.EventTypeUpdated, changes); err != nil {
			return nil, err
		}
	}

	return events, nil
}
