package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/enums"
	"github.com/C00lPIXER/aperture/pkg/types"
)

// Order is the immutable checkout snapshot. Only OrderStatus, PaymentStatus
// and the transition timestamps change after insert.
type Order struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	User            *User                 `gorm:"foreignKey:UserID"`
	ShippingAddress types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;not null"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;type:text;not null"`
	TotalPrice      decimal.Decimal       `gorm:"column:total_price;type:numeric(12,2);not null"`
	Discount        decimal.Decimal       `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	CouponCode      *string               `gorm:"column:coupon_code"`
	OrderStatus     enums.OrderStatus     `gorm:"column:order_status;type:text;not null;default:'Placed'"`
	PaymentStatus   enums.PaymentStatus   `gorm:"column:payment_status;type:text;not null;default:'Pending'"`
	Items           []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PlacedAt        time.Time             `gorm:"column:placed_at;not null;index"`
	CancelledAt     *time.Time            `gorm:"column:cancelled_at"`
	ReturnedAt      *time.Time            `gorm:"column:returned_at"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	ensureID(&o.ID)
	if o.PlacedAt.IsZero() {
		o.PlacedAt = time.Now().UTC()
	}
	return nil
}

// OrderItem freezes product, quantity and unit price at placement time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Name      string          `gorm:"column:name;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
