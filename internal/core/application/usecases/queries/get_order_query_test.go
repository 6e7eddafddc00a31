package queries_test

import (
	"testing"

	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("should create query by ID", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetOrderQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.ID().IsEqual(id))
		assert.Empty(t, query.OrderNumber())
	})

	t.Run("should reject empty ID", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{})
		require.Error(t, err)
	})
}

func TestNewGetOrderByNumberQuery(t *testing.T) {
	t.Run("should create query by number", func(t *testing.T) {
		query, err := queries.NewGetOrderByNumberQuery("ORD00000042")

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "ORD00000042", query.OrderNumber())
	})

	t.Run("should reject empty number", func(t *testing.T) {
		_, err := queries.NewGetOrderByNumberQuery("")
		require.Error(t, err)
	})
}

func TestNewGetOrderEventsQuery(t *testing.T) {
	t.Run("should create query", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetOrderEventsQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.OrderID().IsEqual(id))
	})

	t.Run("should reject empty order ID", func(t *testing.T) {
		_, err := queries.NewGetOrderEventsQuery(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var query queries.GetOrderEventsQuery
		require.ErrorIs(t, query.Validate(), queries.ErrGetOrderEventsQueryIsNotConstructed)
	})
}
