package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/C00lPIXER/aperture/api/middleware"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
)

func requireUser(r *http.Request) (uuid.UUID, error) {
	id, ok := middleware.UserUUIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	return id, nil
}

func unavailable(name string) error {
	return pkgerrors.New(pkgerrors.CodeInternal, name+" unavailable")
}
