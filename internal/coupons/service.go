package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/metrics"
)

const (
	msgInvalidCoupon = "Invalid coupon"
	msgCartEmpty     = "Cart is empty"
	msgApplied       = "Coupon applied"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ApplyResult is the coupon outcome returned to the checkout page.
type ApplyResult struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
}

// Service applies coupons to carts and releases them again.
type Service interface {
	Apply(ctx context.Context, userID uuid.UUID, code string) (ApplyResult, error)
	Release(ctx context.Context, tx *gorm.DB, cart *models.Cart) error
}

type service struct {
	repo    *Repository
	tx      txRunner
	metrics *metrics.StoreMetrics
}

func NewService(repo *Repository, tx txRunner, m *metrics.StoreMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, metrics: m}, nil
}

// Apply sets the coupon on the user's cart. Switching coupons releases the
// previous one so used counts stay balanced. Expiry and minimum order rules
// are not enforced.
func (s *service) Apply(ctx context.Context, userID uuid.UUID, code string) (ApplyResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return ApplyResult{Success: false, Message: msgInvalidCoupon}, nil
	}

	var result ApplyResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		coupon, err := repo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = ApplyResult{Success: false, Message: msgInvalidCoupon}
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
		}

		cart, items, err := repo.FindCart(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if cart == nil || items == 0 {
			result = ApplyResult{Success: false, Message: msgCartEmpty}
			return nil
		}

		if cart.CouponCode != nil && *cart.CouponCode != coupon.Code {
			if err := s.release(ctx, repo, *cart.CouponCode); err != nil {
				return err
			}
		}
		if cart.CouponCode == nil || *cart.CouponCode != coupon.Code {
			if err := repo.IncrementUsage(ctx, coupon.Code); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment coupon usage")
			}
		}
		applied := coupon.Code
		if err := repo.SetCartCoupon(ctx, cart.ID, &applied, coupon.Discount); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply coupon to cart")
		}

		discount := coupon.Discount
		result = ApplyResult{Success: true, Message: msgApplied, Discount: &discount}
		return nil
	})
	if err != nil {
		return ApplyResult{}, err
	}
	return result, nil
}

// Release clears the cart's coupon and returns one use to the coupon. It is a
// no-op for carts without a coupon.
func (s *service) Release(ctx context.Context, tx *gorm.DB, cart *models.Cart) error {
	if cart == nil || cart.CouponCode == nil {
		return nil
	}
	repo := s.repo.WithTx(tx)
	if err := s.release(ctx, repo, *cart.CouponCode); err != nil {
		return err
	}
	if err := repo.SetCartCoupon(ctx, cart.ID, nil, decimal.Zero); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart coupon")
	}
	cart.CouponCode = nil
	cart.Discount = decimal.Zero
	return nil
}

func (s *service) release(ctx context.Context, repo *Repository, code string) error {
	released, err := repo.ReleaseUsage(ctx, code)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release coupon usage")
	}
	if released {
		s.metrics.CouponReleased()
	}
	return nil
}
