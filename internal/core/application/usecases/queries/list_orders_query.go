package queries

import (
	"errors"
	"time"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)

	sortableColumns = map[string]string{
		"created_at":   "created_at",
		"updated_at":   "updated_at",
		"order_number": "order_number",
		"status":       "status",
	}
)

// ListOrdersFilter narrows and pages the order listing. Zero values mean
// "no constraint" for the corresponding field.
type ListOrdersFilter struct {
	UserID            string
	Status            string
	PaymentStatus     string
	FulfillmentStatus string
	Search            string
	DateFrom          *time.Time
	DateTo            *time.Time
	SortBy            string
	SortDesc          bool
	Page              int
	Limit             int
}

// ListOrdersQuery retrieves a filtered, paginated page of orders together
// with the total match count.
//
// Example:
//
//	query, err := NewListOrdersQuery(ListOrdersFilter{
//	    Status: "pending",
//	    Limit:  50,
//	})
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	fmt.Printf("Showing %d of %d orders\n", len(page.Orders), page.Total)
type ListOrdersQuery struct {
	filter ListOrdersFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query, normalizing pagination:
// page defaults to 1, limit defaults to 20 and is capped at 100.
func NewListOrdersQuery(filter ListOrdersFilter) (ListOrdersQuery, error) {
	if filter.Page < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", filter.Page, 0, "unbounded")
	}
	if filter.Limit < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", filter.Limit, 0, maxPageLimit)
	}
	if filter.SortBy != "" {
		if _, ok := sortableColumns[filter.SortBy]; !ok {
			return ListOrdersQuery{}, errs.NewValueIsInvalidError("sortBy")
		}
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("dateTo")
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
		filter.SortDesc = true
	}

	return ListOrdersQuery{
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Filter returns the normalized filter.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ListOrdersQueryResponse is one page of the order listing.
type ListOrdersQueryResponse struct {
	Orders []OrderResponse
	Total  int64
	Page   int
	Limit  int
}
