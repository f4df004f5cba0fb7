package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
)

// Repository persists carts and their line items.
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

// FindByUser loads the cart with items in insertion order and their products.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *Repository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *Repository) FindProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) HasItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) AddItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// IncrementItem raises the quantity by one while it stays below both
// maxQty and the product stock.
func (r *Repository) IncrementItem(ctx context.Context, cartID, productID uuid.UUID, maxQty int) (bool, error) {
	stock := r.db.Model(&models.Product{}).Select("stock").Where("id = ?", productID)
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Where("quantity < ?", maxQty).
		Where("quantity < (?)", stock).
		UpdateColumn("quantity", gorm.Expr("quantity + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DecrementItem lowers the quantity by one while it stays at least 1.
func (r *Repository) DecrementItem(ctx context.Context, cartID, productID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND quantity > 1", cartID, productID).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// PurgeOutOfStock deletes lines whose product has no stock left.
func (r *Repository) PurgeOutOfStock(ctx context.Context, cartID uuid.UUID) (int64, error) {
	soldOut := r.db.Model(&models.Product{}).Select("id").Where("stock <= 0")
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id IN (?)", cartID, soldOut).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// Delete removes the cart and all of its items.
func (r *Repository) Delete(ctx context.Context, cartID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", cartID).Delete(&models.Cart{}).Error
}
