package auth

import (
	"context"

	"github.com/C00lPIXER/aperture/internal/users"
	"github.com/C00lPIXER/aperture/pkg/config"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
)

// AdminRegisterRequest contains the credentials for the dev-only admin registration flow.
type AdminRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminRegisterService handles creating dev admin users.
type AdminRegisterService interface {
	Register(ctx context.Context, req AdminRegisterRequest) (*users.UserDTO, error)
}

// AdminRegisterServiceParams names the dependencies for the admin register flow.
type AdminRegisterServiceParams struct {
	Users          registerRepository
	PasswordConfig config.PasswordConfig
}

type adminRegisterService struct {
	users       registerRepository
	passwordCfg config.PasswordConfig
}

// NewAdminRegisterService builds a dev admin registration service.
func NewAdminRegisterService(params AdminRegisterServiceParams) (AdminRegisterService, error) {
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	return &adminRegisterService{
		users:       params.Users,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *adminRegisterService) Register(ctx context.Context, req AdminRegisterRequest) (*users.UserDTO, error) {
	return createAccount(ctx, s.users, s.passwordCfg, users.CreateUserDTO{
		Email:   req.Email,
		Name:    req.Name,
		IsAdmin: true,
	}, req.Password)
}
