// Package seqrepo persists named monotonic counters used for order number
// allocation. Each draw is a single atomic upsert, so concurrent callers
// across processes never observe the same value.
package seqrepo

import (
	"context"

	"commerce/internal/pkg/errs"

	"gorm.io/gorm"
)

// SequenceDTO represents one named counter row.
type SequenceDTO struct {
	Name  string `gorm:"primaryKey"`
	Value int64
}

// TableName specifies the database table name for counters.
func (SequenceDTO) TableName() string {
	return "sequences"
}

// GormSequenceRepository implements SequenceRepository using GORM.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GORM sequence repository.
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next increments the named counter and returns its new value; the first
// draw for a name returns 1. The insert-or-increment runs as one statement,
// letting PostgreSQL serialize concurrent draws through row locking.
func (r *GormSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errs.NewValueIsRequiredError("name")
	}

	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequences (name, value)
		VALUES (?, 1)
		ON CONFLICT (name)
		DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`, name).Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}
