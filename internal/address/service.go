package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*AddressDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	out := make([]AddressDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*AddressDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	addrType, err := enums.ParseAddressType(req.Type)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address type")
	}
	addr := &models.Address{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Mobile:   strings.TrimSpace(req.Mobile),
		Pincode:  strings.TrimSpace(req.Pincode),
		Locality: strings.TrimSpace(req.Locality),
		City:     strings.TrimSpace(req.City),
		State:    strings.TrimSpace(req.State),
		Landmark: strings.TrimSpace(req.Landmark),
		Type:     addrType,
	}
	if err := Snapshot(addr).Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address")
	}
	if err := s.repo.Create(ctx, addr); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	dto := FromModel(*addr)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return nil
}

// IsNotFound reports whether err is a missing-row error from FindForUser.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
