package address

import (
	"github.com/google/uuid"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	"github.com/C00lPIXER/aperture/pkg/types"
)

// CreateRequest is the body accepted when saving a new address.
type CreateRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Mobile   string `json:"mobile" validate:"required,numeric,min=10,max=15"`
	Pincode  string `json:"pincode" validate:"required,numeric,min=4,max=10"`
	Locality string `json:"locality" validate:"required,max=200"`
	City     string `json:"city" validate:"required,max=100"`
	State    string `json:"state" validate:"required,max=100"`
	Landmark string `json:"landmark" validate:"max=200"`
	Type     string `json:"type" validate:"omitempty,oneof=home work"`
}

// AddressDTO is the JSON shape of a saved address.
type AddressDTO struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Mobile   string            `json:"mobile"`
	Pincode  string            `json:"pincode"`
	Locality string            `json:"locality"`
	City     string            `json:"city"`
	State    string            `json:"state"`
	Landmark string            `json:"landmark,omitempty"`
	Type     enums.AddressType `json:"type"`
}

func FromModel(a models.Address) AddressDTO {
	return AddressDTO{
		ID:       a.ID,
		Name:     a.Name,
		Mobile:   a.Mobile,
		Pincode:  a.Pincode,
		Locality: a.Locality,
		City:     a.City,
		State:    a.State,
		Landmark: a.Landmark,
		Type:     a.Type,
	}
}

// Snapshot copies the eight address fields stored on an order.
func Snapshot(a *models.Address) types.ShippingAddress {
	if a == nil {
		return types.ShippingAddress{}
	}
	return types.ShippingAddress{
		Name:     a.Name,
		Mobile:   a.Mobile,
		Pincode:  a.Pincode,
		Locality: a.Locality,
		City:     a.City,
		State:    a.State,
		Landmark: a.Landmark,
		Type:     a.Type.String(),
	}
}
