package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon is a code based flat discount with a usage counter.
type Coupon struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Code      string          `gorm:"column:code;not null;uniqueIndex"`
	Discount  decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null"`
	UsedCount int             `gorm:"column:used_count;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (c *Coupon) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
