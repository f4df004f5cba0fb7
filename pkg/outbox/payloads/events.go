// Package payloads defines the JSON bodies carried inside outbox envelopes.
package payloads

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/pkg/enums"
)

// OrderPlacedEvent is emitted once the checkout transaction commits.
type OrderPlacedEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	UserID        uuid.UUID           `json:"user_id"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
	Discount      decimal.Decimal     `json:"discount"`
	CouponCode    *string             `json:"coupon_code,omitempty"`
	Items         []OrderLine         `json:"items"`
}

// OrderLine is one placed item.
type OrderLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderStatusEvent covers cancellation and return.
type OrderStatusEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	UserID        uuid.UUID           `json:"user_id"`
	Status        enums.OrderStatus   `json:"status"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	Refunded      decimal.Decimal     `json:"refunded"`
}

// WalletMovementEvent mirrors one wallet_transactions row.
type WalletMovementEvent struct {
	UserID      uuid.UUID                   `json:"user_id"`
	Type        enums.WalletTransactionType `json:"type"`
	Amount      decimal.Decimal             `json:"amount"`
	Balance     decimal.Decimal             `json:"balance"`
	Description string                      `json:"description"`
	OrderID     *uuid.UUID                  `json:"order_id,omitempty"`
}
