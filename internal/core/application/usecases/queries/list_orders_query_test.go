package queries_test

import (
	"testing"
	"time"

	"commerce/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("should normalize zero pagination", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{})
		require.NoError(t, err)
		require.NoError(t, query.Validate())

		filter := query.Filter()
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.Limit)
		assert.Equal(t, "created_at", filter.SortBy)
		assert.True(t, filter.SortDesc)
	})

	t.Run("should cap the limit", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{Limit: 5000})
		require.NoError(t, err)
		assert.Equal(t, 100, query.Filter().Limit)
	})

	t.Run("should keep explicit sorting", func(t *testing.T) {
		query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{SortBy: "order_number"})
		require.NoError(t, err)
		assert.Equal(t, "order_number", query.Filter().SortBy)
		assert.False(t, query.Filter().SortDesc)
	})

	t.Run("should reject unknown sort column", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{SortBy: "email; DROP TABLE orders"})
		require.Error(t, err)
	})

	t.Run("should reject negative pagination", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{Page: -1})
		require.Error(t, err)

		_, err = queries.NewListOrdersQuery(queries.ListOrdersFilter{Limit: -1})
		require.Error(t, err)
	})

	t.Run("should reject inverted date range", func(t *testing.T) {
		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		to := from.Add(-time.Hour)
		_, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{DateFrom: &from, DateTo: &to})
		require.Error(t, err)
	})

	t.Run("should fail validation when not constructed", func(t *testing.T) {
		var query queries.ListOrdersQuery
		require.ErrorIs(t, query.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	})
}
