package controllers

import (
	"net/http"

	"github.com/C00lPIXER/aperture/api/responses"
	"github.com/C00lPIXER/aperture/api/validators"
	"github.com/C00lPIXER/aperture/internal/catalog"
	"github.com/C00lPIXER/aperture/pkg/config"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/logger"
	"github.com/C00lPIXER/aperture/pkg/pagination"
)

const (
	maxSearchLen = 100
	maxFilterLen = 500
)

// Home lists the newest in-stock products.
func Home(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog service"))
			return
		}
		products, err := svc.Home(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// Shop serves the filtered, sorted and paginated product listing.
func Shop(svc catalog.Service, store config.StoreConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog service"))
			return
		}
		q := r.URL.Query()
		query := catalog.ShopQuery{
			Search:   validators.SanitizeString(q.Get("search"), maxSearchLen),
			Brand:    validators.SanitizeString(q.Get("brand"), maxFilterLen),
			Category: validators.SanitizeString(q.Get("category"), maxFilterLen),
			Sort:     validators.SanitizeString(q.Get("sort"), 20),
			Page:     pagination.ParsePage(q.Get("page"), q.Get("limit"), store.PageLimit),
		}
		page, err := svc.Shop(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ProductDetail resolves ?product= by id or slug.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("catalog service"))
			return
		}
		ref := validators.SanitizeString(r.URL.Query().Get("product"), 200)
		if ref == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product is required"))
			return
		}
		detail, err := svc.ProductDetail(r.Context(), ref)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
