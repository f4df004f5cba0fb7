package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is the single mutable cart of a user. It is deleted once an order is
// placed from it.
type Cart struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CouponCode *string         `gorm:"column:coupon_code"`
	Discount   decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	Items      []CartItem      `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Cart) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// CartItem is a cart line. Price is the product price captured when added.
type CartItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CartID    uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Quantity  int             `gorm:"column:quantity;not null;default:1"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (i *CartItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
