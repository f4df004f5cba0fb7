package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PlacedBetween loads every order placed inside [start, end], oldest first.
func (r *Repository) PlacedBetween(ctx context.Context, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("placed_at BETWEEN ? AND ?", start.UTC(), end.UTC()).
		Order("placed_at ASC").
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}
