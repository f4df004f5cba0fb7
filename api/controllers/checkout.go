package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/C00lPIXER/aperture/api/responses"
	"github.com/C00lPIXER/aperture/api/validators"
	"github.com/C00lPIXER/aperture/internal/cart"
	"github.com/C00lPIXER/aperture/internal/orders"
	"github.com/C00lPIXER/aperture/pkg/logger"
)

type placeOrderRequest struct {
	ShippingAddressID string          `json:"shippingAddressId"`
	PaymentMethod     string          `json:"paymentMethod" validate:"max=50"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
}

// CheckoutView returns the cart and saved addresses, or a redirect when the
// cart is empty.
func CheckoutView(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("cart service"))
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Checkout(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// PlaceOrder converts the cart into an order. Unknown address ids fall through
// to the service so the shopper gets the standard rejection message.
func PlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("order service"))
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body placeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		addressID, parseErr := uuid.Parse(strings.TrimSpace(body.ShippingAddressID))
		if parseErr != nil {
			addressID = uuid.Nil
		}

		result, err := svc.Place(r.Context(), orders.PlaceOrderInput{
			UserID:            userID,
			ShippingAddressID: addressID,
			PaymentMethod:     strings.TrimSpace(body.PaymentMethod),
			TotalPrice:        body.TotalPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteResult(w, result)
	}
}
