package eventrepo

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderEventRepository implements OrderEventRepository using GORM.
type GormOrderEventRepository struct {
	db *gorm.DB
}

// NewGormOrderEventRepository creates a new GORM ledger repository.
func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// Append durably stores a new ledger entry. When the repository is bound to
// a transaction the append commits or rolls back with it.
func (r *GormOrderEventRepository) Append(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Omit("seq").Create(&dto).Error
}

// ListByOrder returns every ledger entry for the order, oldest first.
// Entries sharing a createdAt timestamp come back in insertion order.
func (r *GormOrderEventRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*order.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		events = append(events, event)
	}

	return events, nil
}
