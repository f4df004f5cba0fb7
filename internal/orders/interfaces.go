package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	"github.com/C00lPIXER/aperture/pkg/pagination"
)

// Repository defines persistence operations for orders and product stock.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindForUser(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page pagination.Page) ([]models.Order, int64, error)
	TransitionFromPlaced(ctx context.Context, orderID uuid.UUID, change StatusChange) (bool, error)
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
	RestoreStock(ctx context.Context, productID uuid.UUID, qty int) error
}

// StatusChange is the column set written when a placed order moves on.
type StatusChange struct {
	Status        enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	At            time.Time
}
