package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/C00lPIXER/aperture/api/middleware"
	"github.com/C00lPIXER/aperture/api/responses"
	"github.com/C00lPIXER/aperture/api/validators"
	"github.com/C00lPIXER/aperture/internal/cart"
	"github.com/C00lPIXER/aperture/internal/coupons"
	"github.com/C00lPIXER/aperture/pkg/logger"
)

type cartItemRequest struct {
	ID string `json:"id" validate:"required"`
}

type cartQuantityRequest struct {
	ProductID   string     `json:"productId" validate:"required"`
	IsIncrement switchFlag `json:"isIncrement"`
}

type couponRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

// switchFlag accepts "1"/"0", 1/0 and true/false.
type switchFlag bool

func (f *switchFlag) UnmarshalJSON(data []byte) error {
	switch string(bytes.Trim(data, `"`)) {
	case "1", "true":
		*f = true
	case "0", "false", "", "null":
		*f = false
	default:
		return fmt.Errorf("isIncrement must be 1 or 0")
	}
	return nil
}

// CartView renders the caller's cart with totals derived from current prices.
func CartView(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
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
		view, err := svc.Load(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartAdd puts one unit in the cart. Guests receive an informational result.
func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("cart service"))
			return
		}
		var body cartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseUUID(body.ID, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if id, ok := middleware.UserUUIDFromContext(r.Context()); ok {
			userID = &id
		}
		result, err := svc.Add(r.Context(), userID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteResult(w, result)
	}
}

func CartQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
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
		var body cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseUUID(body.ProductID, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ChangeQuantity(r.Context(), userID, productID, bool(body.IsIncrement))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteResult(w, result)
	}
}

func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
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
		var body cartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseUUID(body.ID, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Remove(r.Context(), userID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteResult(w, result)
	}
}

// CartApplyCoupon applies a coupon code to the caller's cart.
func CartApplyCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("coupon service"))
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body couponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Apply(r.Context(), userID, validators.SanitizeString(body.Code, 50))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteResult(w, result)
	}
}
