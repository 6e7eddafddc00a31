package order_test

import (
	"testing"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createValidItem(t *testing.T) order.Item {
	t.Helper()
	item, err := order.NewItem("Widget", "", "SKU-1", 2, 9.99)
	require.NoError(t, err)
	return item
}

func createValidOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD00000001",
		nil,
		"buyer@example.com",
		"USD",
		[]order.Item{createValidItem(t)},
		nil,
		nil,
	)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

// advanceTo walks the order along the happy path up to the target status.
func advanceTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	path := []order.Status{
		order.StatusConfirmed,
		order.StatusProcessing,
		order.StatusShipped,
		order.StatusDelivered,
	}
	for _, next := range path {
		if o.Status() == target {
			return
		}
		require.NoError(t, o.ChangeStatus(next))
	}
	require.Equal(t, target, o.Status())
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		userID := kernel.NewUUID()
		item := createValidItem(t)

		o, err := order.NewOrder(id, "ORD00000042", &userID, "buyer@example.com", "EUR",
			[]order.Item{item}, nil, nil)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "ORD00000042", o.OrderNumber())
		assert.Equal(t, "buyer@example.com", o.Email())
		assert.Equal(t, "EUR", o.Currency())
		assert.Len(t, o.Items(), 1)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, order.FulfillmentUnfulfilled, o.FulfillmentStatus())
		assert.Equal(t, 1, o.Version())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("should allow guest orders without user", func(t *testing.T) {
		o := createValidOrder(t)
		assert.Nil(t, o.UserID())
	})

	t.Run("should reject missing email", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD00000001", nil, "",
			"USD", []order.Item{createValidItem(t)}, nil, nil)
		require.Error(t, err)
	})

	t.Run("should reject malformed email", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD00000001", nil, "not-an-email",
			"USD", []order.Item{createValidItem(t)}, nil, nil)
		require.Error(t, err)
	})

	t.Run("should reject empty items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD00000001", nil, "buyer@example.com",
			"USD", nil, nil, nil)
		require.Error(t, err)
	})

	t.Run("should reject empty order number", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", nil, "buyer@example.com",
			"USD", []order.Item{createValidItem(t)}, nil, nil)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for directly instantiated order", func(t *testing.T) {
		var o order.Order
		require.Error(t, o.Validate())
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("should confirm pending order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Confirm())
		assert.Equal(t, order.StatusConfirmed, o.Status())
	})

	t.Run("should reject double confirm and keep state", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Confirm())

		err := o.Confirm()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusConfirmed, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel pending order", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("should reject cancel of shipped order", func(t *testing.T) {
		o := createValidOrder(t)
		advanceTo(t, o, order.StatusShipped)

		err := o.Cancel()
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusShipped, o.Status())
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o := createValidOrder(t)
		advanceTo(t, o, order.StatusDelivered)
		assert.Equal(t, order.StatusDelivered, o.Status())
	})

	t.Run("should reject skipping states", func(t *testing.T) {
		o := createValidOrder(t)
		err := o.ChangeStatus(order.StatusShipped)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("should reject any move out of a final state", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.Cancel())

		for _, target := range []order.Status{
			order.StatusPending,
			order.StatusConfirmed,
			order.StatusProcessing,
			order.StatusShipped,
			order.StatusDelivered,
		} {
			err := o.ChangeStatus(target)
			require.ErrorIs(t, err, order.ErrInvalidTransition, target.String())
		}
		assert.Equal(t, order.StatusCancelled, o.Status())
	})
}

func TestOrder_SetPaymentStatus(t *testing.T) {
	t.Run("should track payment independently of status", func(t *testing.T) {
		o := createValidOrder(t)
		require.NoError(t, o.SetPaymentStatus(order.PaymentPaid))
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, order.StatusPending, o.Status())
	})

	t.Run("should reject invalid value", func(t *testing.T) {
		o := createValidOrder(t)
		require.Error(t, o.SetPaymentStatus(order.PaymentUnknown))
	})
}

func TestOrder_SetFulfillmentStatus(t *testing.T) {
	o := createValidOrder(t)
	require.NoError(t, o.SetFulfillmentStatus(order.FulfillmentPartial))
	assert.Equal(t, order.FulfillmentPartial, o.FulfillmentStatus())

	require.Error(t, o.SetFulfillmentStatus(order.FulfillmentUnknown))
}

func TestOrder_MergeMetadata(t *testing.T) {
	o := createValidOrder(t)

	o.MergeMetadata(map[string]any{"source": "web", "campaign": "spring"})
	o.MergeMetadata(map[string]any{"campaign": "summer"})

	metadata := o.Metadata()
	assert.Equal(t, "web", metadata["source"])
	assert.Equal(t, "summer", metadata["campaign"])
}

func TestOrder_MetadataIsCopied(t *testing.T) {
	o := createValidOrder(t)
	o.MergeMetadata(map[string]any{"source": "web"})

	got := o.Metadata()
	got["source"] = "tampered"

	assert.Equal(t, "web", o.Metadata()["source"])
}

func TestOrder_IncrementVersion(t *testing.T) {
	o := createValidOrder(t)
	require.Equal(t, 1, o.Version())

	o.IncrementVersion()
	assert.Equal(t, 2, o.Version())
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore stored state as-is", func(t *testing.T) {
		original := createValidOrder(t)
		advanceTo(t, original, order.StatusShipped)
		require.NoError(t, original.SetPaymentStatus(order.PaymentPaid))

		restored, err := order.RestoreOrder(
			original.ID(),
			original.OrderNumber(),
			nil,
			original.Email(),
			original.Currency(),
			original.Items(),
			original.Status(),
			original.PaymentStatus(),
			original.FulfillmentStatus(),
			nil,
			nil,
			"left at door",
			map[string]any{"source": "web"},
			7,
			original.CreatedAt(),
			original.UpdatedAt(),
		)

		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, restored.Status())
		assert.Equal(t, order.PaymentPaid, restored.PaymentStatus())
		assert.Equal(t, "left at door", restored.Notes())
		assert.Equal(t, 7, restored.Version())
		assert.True(t, restored.IsEqual(original))
	})

	t.Run("should reject invalid stored status", func(t *testing.T) {
		original := createValidOrder(t)
		_, err := order.RestoreOrder(
			original.ID(), original.OrderNumber(), nil, original.Email(),
			original.Currency(), original.Items(),
			order.StatusUnknown, order.PaymentPending, order.FulfillmentUnfulfilled,
			nil, nil, "", nil, 1, original.CreatedAt(), original.UpdatedAt(),
		)
		require.Error(t, err)
	})
}
