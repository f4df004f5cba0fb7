package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/enums"
)

// Wallet holds a user's stored value balance. It is created on first credit.
type Wallet struct {
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;primaryKey"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// WalletTransaction is an append-only wallet history entry.
type WalletTransaction struct {
	ID          uuid.UUID                   `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID                   `gorm:"column:user_id;type:uuid;not null;index"`
	Type        enums.WalletTransactionType `gorm:"column:transaction_type;type:text;not null"`
	Amount      decimal.Decimal             `gorm:"column:amount;type:numeric(12,2);not null"`
	Description string                      `gorm:"column:description;not null"`
	OrderID     *uuid.UUID                  `gorm:"column:order_id;type:uuid"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
}

func (t *WalletTransaction) BeforeCreate(*gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
