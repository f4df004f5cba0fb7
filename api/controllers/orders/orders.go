package orders

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/C00lPIXER/aperture/api/middleware"
	"github.com/C00lPIXER/aperture/api/responses"
	"github.com/C00lPIXER/aperture/api/validators"
	internalorders "github.com/C00lPIXER/aperture/internal/orders"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/logger"
	"github.com/C00lPIXER/aperture/pkg/pagination"
	"github.com/C00lPIXER/aperture/pkg/types"
)

const defaultPageSize = 10

type orderActionRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// List returns the caller's orders, newest first.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
			return
		}
		q := r.URL.Query()
		page := pagination.ParsePage(q.Get("page"), q.Get("limit"), defaultPageSize)

		list, err := svc.ListForUser(r.Context(), userID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
			return
		}
		orderID, err := validators.ParseURLParamUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Cancel moves a placed order to cancelled and refunds prepaid amounts.
func Cancel(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return transition(svc, logg, internalorders.Service.Cancel)
}

// Return moves a placed order to returned and refunds prepaid amounts.
func Return(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return transition(svc, logg, internalorders.Service.Return)
}

type transitionFunc = func(internalorders.Service, context.Context, uuid.UUID, uuid.UUID) (types.StatusResult, error)

func transition(svc internalorders.Service, logg *logger.Logger, apply transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required"))
			return
		}
		var body orderActionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := uuid.Parse(strings.TrimSpace(body.OrderID))
		if err != nil {
			responses.WriteResult(w, types.StatusResult{Status: false, Message: "Order not found"})
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, orderID.String())
		}
		result, err := apply(svc, ctx, userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteResult(w, result)
	}
}
