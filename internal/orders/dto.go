package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	"github.com/C00lPIXER/aperture/pkg/types"
)

// PlaceOrderInput is the checkout submission.
type PlaceOrderInput struct {
	UserID            uuid.UUID
	ShippingAddressID uuid.UUID
	PaymentMethod     string
	TotalPrice        decimal.Decimal
}

// PlaceResult is the checkout outcome. OrderID is set on success.
type PlaceResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	OrderID *uuid.UUID `json:"orderId,omitempty"`
}

// OrderItemDTO is a placed line.
type OrderItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderDTO is the order history shape.
type OrderDTO struct {
	ID              uuid.UUID             `json:"id"`
	Items           []OrderItemDTO        `json:"items"`
	ShippingAddress types.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   enums.PaymentMethod   `json:"paymentMethod"`
	TotalPrice      decimal.Decimal       `json:"totalPrice"`
	Discount        decimal.Decimal       `json:"discount"`
	CouponCode      *string               `json:"couponCode,omitempty"`
	OrderStatus     enums.OrderStatus     `json:"orderStatus"`
	PaymentStatus   enums.PaymentStatus   `json:"paymentStatus"`
	PlacedAt        time.Time             `json:"placedAt"`
	CancelledAt     *time.Time            `json:"cancelledAt,omitempty"`
	ReturnedAt      *time.Time            `json:"returnedAt,omitempty"`
}

// OrderList is one page of a shopper's orders.
type OrderList struct {
	Orders      []OrderDTO `json:"orders"`
	Total       int64      `json:"total"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}

func FromModel(o models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return OrderDTO{
		ID:              o.ID,
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		TotalPrice:      o.TotalPrice,
		Discount:        o.Discount,
		CouponCode:      o.CouponCode,
		OrderStatus:     o.OrderStatus,
		PaymentStatus:   o.PaymentStatus,
		PlacedAt:        o.PlacedAt,
		CancelledAt:     o.CancelledAt,
		ReturnedAt:      o.ReturnedAt,
	}
}
