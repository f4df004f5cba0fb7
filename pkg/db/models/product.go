package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable catalog entry. Stock never drops below zero.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	Description string          `gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0;check:stock >= 0"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	BrandID     uuid.UUID       `gorm:"column:brand_id;type:uuid;not null"`
	Brand       *Brand          `gorm:"foreignKey:BrandID"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	Ratings     decimal.Decimal `gorm:"column:ratings;type:numeric(3,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name + "-" + p.ID.String()[:8])
	}
	return nil
}
