package coupons

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
)

// Repository covers the coupon counter and the coupon fields of carts.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByCode matches the code exactly.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *Repository) IncrementUsage(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ?", code).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

// ReleaseUsage decrements the counter without letting it go negative.
func (r *Repository) ReleaseUsage(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("code = ? AND used_count > 0", code).
		UpdateColumn("used_count", gorm.Expr("used_count - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindCart loads the user's cart with its item count.
func (r *Repository) FindCart(ctx context.Context, userID uuid.UUID) (*models.Cart, int64, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, 0, err
	}
	var items int64
	if err := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&items).Error; err != nil {
		return nil, 0, err
	}
	return &cart, items, nil
}

// SetCartCoupon writes the applied code and discount, or clears both when
// code is nil.
func (r *Repository) SetCartCoupon(ctx context.Context, cartID uuid.UUID, code *string, discount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"coupon_code": code,
			"discount":    discount,
		}).Error
}
