package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/enums"
)

// Address is a saved shipping address owned by one user.
type Address struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string            `gorm:"column:name;not null"`
	Mobile    string            `gorm:"column:mobile;not null"`
	Pincode   string            `gorm:"column:pincode;not null"`
	Locality  string            `gorm:"column:locality;not null"`
	City      string            `gorm:"column:city;not null"`
	State     string            `gorm:"column:state;not null"`
	Landmark  string            `gorm:"column:landmark;not null;default:''"`
	Type      enums.AddressType `gorm:"column:type;type:text;not null;default:'home'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (a *Address) BeforeCreate(*gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
