package order_test

import (
	"testing"

	"commerce/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionGraph(t *testing.T) {
	all := []order.Status{
		order.StatusPending,
		order.StatusConfirmed,
		order.StatusProcessing,
		order.StatusShipped,
		order.StatusDelivered,
		order.StatusCancelled,
	}

	legal := map[order.Status][]order.Status{
		order.StatusPending:    {order.StatusConfirmed, order.StatusCancelled},
		order.StatusConfirmed:  {order.StatusProcessing, order.StatusCancelled},
		order.StatusProcessing: {order.StatusShipped, order.StatusCancelled},
		order.StatusShipped:    {order.StatusDelivered},
		order.StatusDelivered:  {},
		order.StatusCancelled:  {},
	}

	for _, from := range all {
		for _, to := range all {
			allowed := false
			for _, edge := range legal[from] {
				if edge == to {
					allowed = true
					break
				}
			}

			name := from.String() + "_to_" + to.String()
			t.Run(name, func(t *testing.T) {
				assert.Equal(t, allowed, from.CanTransitionTo(to))

				result, err := from.TransitionTo(to)
				if allowed {
					require.NoError(t, err)
					assert.Equal(t, to, result)
				} else {
					require.ErrorIs(t, err, order.ErrInvalidTransition)
				}
			})
		}
	}
}

func TestStatus_SelfTransitionIsIllegal(t *testing.T) {
	_, err := order.StatusPending.TransitionTo(order.StatusPending)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

func TestStatus_IsFinal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsFinal())
	assert.True(t, order.StatusCancelled.IsFinal())

	assert.False(t, order.StatusPending.IsFinal())
	assert.False(t, order.StatusConfirmed.IsFinal())
	assert.False(t, order.StatusProcessing.IsFinal())
	assert.False(t, order.StatusShipped.IsFinal())
}

func TestStatus_Confirm(t *testing.T) {
	t.Run("should confirm pending", func(t *testing.T) {
		result, err := order.StatusPending.Confirm()
		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, result)
	})

	t.Run("should reject confirm from any other status", func(t *testing.T) {
		for _, from := range []order.Status{
			order.StatusConfirmed,
			order.StatusProcessing,
			order.StatusShipped,
			order.StatusDelivered,
			order.StatusCancelled,
		} {
			_, err := from.Confirm()
			require.ErrorIs(t, err, order.ErrInvalidTransition, from.String())
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should cancel pending, confirmed and processing", func(t *testing.T) {
		for _, from := range []order.Status{
			order.StatusPending,
			order.StatusConfirmed,
			order.StatusProcessing,
		} {
			result, err := from.Cancel()
			require.NoError(t, err, from.String())
			assert.Equal(t, order.StatusCancelled, result)
		}
	})

	t.Run("should reject cancel once shipped", func(t *testing.T) {
		for _, from := range []order.Status{
			order.StatusShipped,
			order.StatusDelivered,
			order.StatusCancelled,
		} {
			_, err := from.Cancel()
			require.ErrorIs(t, err, order.ErrInvalidTransition, from.String())
		}
	})
}

func TestStatus_Apply(t *testing.T) {
	t.Run("should route confirm action", func(t *testing.T) {
		result, err := order.StatusPending.Apply(order.ActionConfirm)
		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, result)
	})

	t.Run("should route cancel action", func(t *testing.T) {
		result, err := order.StatusConfirmed.Apply(order.ActionCancel)
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, result)
	})

	t.Run("should reject unknown action", func(t *testing.T) {
		_, err := order.StatusPending.Apply(order.ActionUnknown)
		require.ErrorIs(t, err, order.ErrUnknownAction)
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse all valid names", func(t *testing.T) {
		cases := map[string]order.Status{
			"pending":    order.StatusPending,
			"confirmed":  order.StatusConfirmed,
			"processing": order.StatusProcessing,
			"shipped":    order.StatusShipped,
			"delivered":  order.StatusDelivered,
			"cancelled":  order.StatusCancelled,
		}
		for name, want := range cases {
			got, err := order.ParseStatus(name)
			require.NoError(t, err, name)
			assert.Equal(t, want, got)
			assert.Equal(t, name, got.String())
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "PENDING", "completed"} {
			_, err := order.ParseStatus(name)
			require.Error(t, err, name)
		}
	})
}

func TestParsePaymentStatus(t *testing.T) {
	cases := map[string]order.PaymentStatus{
		"pending":  order.PaymentPending,
		"paid":     order.PaymentPaid,
		"refunded": order.PaymentRefunded,
		"failed":   order.PaymentFailed,
	}
	for name, want := range cases {
		got, err := order.ParsePaymentStatus(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := order.ParsePaymentStatus("declined")
	require.Error(t, err)
}

func TestParseFulfillmentStatus(t *testing.T) {
	cases := map[string]order.FulfillmentStatus{
		"unfulfilled": order.FulfillmentUnfulfilled,
		"partial":     order.FulfillmentPartial,
		"fulfilled":   order.FulfillmentFulfilled,
	}
	for name, want := range cases {
		got, err := order.ParseFulfillmentStatus(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := order.ParseFulfillmentStatus("done")
	require.Error(t, err)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.StatusPending.Validate())
	require.Error(t, order.StatusUnknown.Validate())
	require.Error(t, order.Status(99).Validate())
}
