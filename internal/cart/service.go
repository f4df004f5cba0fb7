package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/internal/address"
	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/types"
)

const (
	msgAdded         = "Item added to cart"
	msgAlreadyInCart = "Item already in cart"
	msgOutOfStock    = "Item curently out of stock "
	msgLoginRequired = "Please log in to continue adding items to your cart"
	msgMaxQuantity   = "Cannot exceed maximum quantity or stock limit"
	msgMinQuantity   = "Quantity cannot be less than 1"
	msgRemoved       = "Item removed"

	checkoutRedirect = "/cart"
)

// errConcurrentAdd aborts the add transaction when a parallel request
// inserted the same line first.
var errConcurrentAdd = errors.New("cart item added concurrently")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type couponReleaser interface {
	Release(ctx context.Context, tx *gorm.DB, cart *models.Cart) error
}

type addressLister interface {
	List(ctx context.Context, userID uuid.UUID) ([]address.AddressDTO, error)
}

// Service implements the shopper cart.
type Service interface {
	Add(ctx context.Context, userID *uuid.UUID, productID uuid.UUID) (types.ActionResult, error)
	ChangeQuantity(ctx context.Context, userID, productID uuid.UUID, increment bool) (types.ActionResult, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (types.ActionResult, error)
	Load(ctx context.Context, userID uuid.UUID) (*View, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*CheckoutView, error)
}

type service struct {
	repo      *Repository
	tx        txRunner
	coupons   couponReleaser
	addresses addressLister
	maxQty    int
}

type ServiceParams struct {
	Repo      *Repository
	Tx        txRunner
	Coupons   couponReleaser
	Addresses addressLister
	Store     config.StoreConfig
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Coupons == nil {
		return nil, fmt.Errorf("coupon releaser required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address lister required")
	}
	maxQty := params.Store.MaxItemQuantity
	if maxQty <= 0 {
		maxQty = 5
	}
	return &service{
		repo:      params.Repo,
		tx:        params.Tx,
		coupons:   params.Coupons,
		addresses: params.Addresses,
		maxQty:    maxQty,
	}, nil
}

// Add puts one unit of a product in the cart. Guests, sold out products and
// products already in the cart get an informational result.
func (s *service) Add(ctx context.Context, userID *uuid.UUID, productID uuid.UUID) (types.ActionResult, error) {
	if userID == nil || *userID == uuid.Nil {
		return types.ActionResult{Success: true, Info: msgLoginRequired}, nil
	}

	var result types.ActionResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if product.Stock <= 0 {
			result = types.ActionResult{Success: true, Info: msgOutOfStock}
			return nil
		}

		cart, err := repo.FindByUser(ctx, *userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cart = &models.Cart{UserID: *userID}
			if err := repo.Create(ctx, cart); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
			}
		case err != nil:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		exists, err := repo.HasItem(ctx, cart.ID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check cart item")
		}
		if exists {
			result = types.ActionResult{Success: true, Info: msgAlreadyInCart}
			return nil
		}

		item := &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: 1, Price: product.Price}
		if err := repo.AddItem(ctx, item); err != nil {
			if db.IsUniqueViolation(err, "") {
				return errConcurrentAdd
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
		}
		result = types.ActionResult{Success: true, Message: msgAdded}
		return nil
	})
	if errors.Is(err, errConcurrentAdd) {
		return types.ActionResult{Success: true, Info: msgAlreadyInCart}, nil
	}
	if err != nil {
		return types.ActionResult{}, err
	}
	return result, nil
}

// ChangeQuantity moves a line by one unit inside [1, min(maxQty, stock)].
// Changing a product that is not in the cart succeeds without effect.
func (s *service) ChangeQuantity(ctx context.Context, userID, productID uuid.UUID, increment bool) (types.ActionResult, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ActionResult{Success: true}, nil
		}
		return types.ActionResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	exists, err := s.repo.HasItem(ctx, cart.ID, productID)
	if err != nil {
		return types.ActionResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check cart item")
	}
	if !exists {
		return types.ActionResult{Success: true}, nil
	}

	if increment {
		changed, err := s.repo.IncrementItem(ctx, cart.ID, productID, s.maxQty)
		if err != nil {
			return types.ActionResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart item")
		}
		if !changed {
			return types.ActionResult{Success: false, Message: msgMaxQuantity}, nil
		}
		return types.ActionResult{Success: true}, nil
	}

	changed, err := s.repo.DecrementItem(ctx, cart.ID, productID)
	if err != nil {
		return types.ActionResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement cart item")
	}
	if !changed {
		return types.ActionResult{Success: false, Message: msgMinQuantity}, nil
	}
	return types.ActionResult{Success: true}, nil
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) (types.ActionResult, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ActionResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if cart != nil {
		if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
			return types.ActionResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
		}
	}
	return types.ActionResult{Success: true, Message: msgRemoved}, nil
}

// Load returns the cart page. Sold out lines are dropped and an applied
// coupon is released whenever items remain.
func (s *service) Load(ctx context.Context, userID uuid.UUID) (*View, error) {
	var loaded *models.Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if _, err := repo.PurgeOutOfStock(ctx, cart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge sold out items")
		}
		cart.Items = inStock(cart.Items)

		if len(cart.Items) > 0 {
			if err := s.coupons.Release(ctx, tx, cart); err != nil {
				return err
			}
		}
		loaded = cart
		return nil
	})
	if err != nil {
		return nil, err
	}
	return viewFromModel(loaded), nil
}

// Checkout returns the cart with the shopper's addresses. The coupon stays
// applied so it is carried into the order.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*CheckoutView, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if cart == nil || len(cart.Items) == 0 {
		return &CheckoutView{Addresses: []address.AddressDTO{}, Redirect: checkoutRedirect}, nil
	}
	addresses, err := s.addresses.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CheckoutView{Cart: viewFromModel(cart), Addresses: addresses}, nil
}

func inStock(items []models.CartItem) []models.CartItem {
	kept := items[:0]
	for _, item := range items {
		if item.Product != nil && item.Product.Stock <= 0 {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}
