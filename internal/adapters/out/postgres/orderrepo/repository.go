package orderrepo

import (
	"context"
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	uniqueViolationCode = "23505"
)

var sortableColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"order_number": "order_number",
	"status":       "status",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. A duplicate order number surfaces
// as a version-conflict error so callers can retry allocation.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return errs.NewVersionConflictErrorWithCause("orderNumber", aggregate.OrderNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order using an optimistic version check.
// The row is written only if its stored version still matches the version
// the aggregate was loaded with; otherwise a version-conflict error is
// returned and nothing changes. On success the aggregate's in-memory
// version is advanced to match storage.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err = r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionConflictError("order", aggregate.ID().String())
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its human-readable order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Query returns the orders matching the filter plus the total match count
// before pagination. Pagination is normalized: page defaults to 1, limit
// defaults to 20 and is capped at 100.
func (r *GormOrderRepository) Query(
	ctx context.Context,
	filter ports.OrderFilter,
) ([]*order.Order, int64, error) {
	tx := r.db.WithContext(ctx).Model(&OrderDTO{})

	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", filter.UserID.Bytes())
	}
	if filter.Status != nil {
		tx = tx.Where("status = ?", int(*filter.Status))
	}
	if filter.PaymentStatus != nil {
		tx = tx.Where("payment_status = ?", int(*filter.PaymentStatus))
	}
	if filter.FulfillmentStatus != nil {
		tx = tx.Where("fulfillment_status = ?", int(*filter.FulfillmentStatus))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("order_number ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if filter.DateFrom != nil {
		tx = tx.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		tx = tx.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy, ok := sortableColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	// Newest first only when the caller asked for nothing; an explicit
	// SortOrder always wins.
	direction := "ASC"
	if filter.SortOrder == ports.SortDesc ||
		(filter.SortOrder == "" && filter.SortBy == "") {
		direction = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var dtos []OrderDTO
	err := tx.Order(sortBy + " " + direction + ", id").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&dtos).Error
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, 0, domainErr
		}
		orders = append(orders, o)
	}

	return orders, total, nil
}
