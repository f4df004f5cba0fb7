package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/internal/address"
	"github.com/C00lPIXER/aperture/pkg/db/models"
)

// ItemDTO is a cart line priced at the current product price.
type ItemDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Stock     int             `json:"stock"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// View is the cart page payload. TotalPrice is derived on every read.
type View struct {
	ID         uuid.UUID       `json:"id"`
	Items      []ItemDTO       `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Discount   decimal.Decimal `json:"discount"`
	CouponCode *string         `json:"couponCode,omitempty"`
}

// CheckoutView carries the cart and the saved addresses to choose from.
// Redirect is set when there is nothing to check out.
type CheckoutView struct {
	Cart      *View                `json:"cart,omitempty"`
	Addresses []address.AddressDTO `json:"addresses"`
	Redirect  string               `json:"redirect,omitempty"`
}

// Total sums current product price times quantity.
func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(unitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// unitPrice prefers the live product price over the price captured on add.
func unitPrice(item models.CartItem) decimal.Decimal {
	if item.Product != nil {
		return item.Product.Price
	}
	return item.Price
}

func viewFromModel(c *models.Cart) *View {
	if c == nil {
		return &View{Items: []ItemDTO{}, TotalPrice: decimal.Zero, Discount: decimal.Zero}
	}
	items := make([]ItemDTO, 0, len(c.Items))
	for _, item := range c.Items {
		dto := ItemDTO{
			ProductID: item.ProductID,
			Price:     unitPrice(item),
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			dto.Name = item.Product.Name
			dto.Slug = item.Product.Slug
			dto.Stock = item.Product.Stock
		}
		dto.Subtotal = dto.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, dto)
	}
	return &View{
		ID:         c.ID,
		Items:      items,
		TotalPrice: Total(c.Items),
		Discount:   c.Discount,
		CouponCode: c.CouponCode,
	}
}
