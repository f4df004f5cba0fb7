package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/internal/users"
	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/security"
)

// RegisterRequest contains the payload required to open a shopper account.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}

// RegisterService creates shopper accounts.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
}

type registerRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	Users          registerRepository
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	users       registerRepository
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	return &registerService{
		users:       params.Users,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	return createAccount(ctx, s.users, s.passwordCfg, users.CreateUserDTO{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
	}, req.Password)
}

// createAccount hashes the password and inserts the user. A concurrent insert
// of the same email surfaces as the same conflict as the upfront check.
func createAccount(ctx context.Context, repo registerRepository, cfg config.PasswordConfig, dto users.CreateUserDTO, password string) (*users.UserDTO, error) {
	dto.Email = users.NormalizeEmail(dto.Email)
	if dto.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := security.ValidateStrength(password); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	if _, err := repo.FindByEmail(ctx, dto.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}

	hash, err := security.HashPassword(password, cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	dto.PasswordHash = hash

	user, err := repo.Create(ctx, dto)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return users.FromModel(user), nil
}
