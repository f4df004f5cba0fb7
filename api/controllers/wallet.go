package controllers

import (
	"net/http"

	"github.com/C00lPIXER/aperture/api/responses"
	"github.com/C00lPIXER/aperture/internal/wallet"
	"github.com/C00lPIXER/aperture/pkg/logger"
)

// WalletView returns the caller's balance and transaction history.
func WalletView(svc wallet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("wallet service"))
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
