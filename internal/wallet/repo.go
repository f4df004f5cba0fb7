package wallet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/C00lPIXER/aperture/pkg/db/models"
)

// Repository persists balances and history. History rows are insert-only.
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

func (r *Repository) Find(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.WithContext(ctx).First(&w, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// Debit subtracts amount only while the balance covers it. It reports
// whether a row changed.
func (r *Repository) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Credit adds amount, creating the wallet on first use.
func (r *Repository) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	seed := models.Wallet{UserID: userID, Balance: decimal.Zero}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&seed).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *Repository) InsertTransaction(ctx context.Context, entry *models.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListTransactions returns the history newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.WalletTransaction, error) {
	var rows []models.WalletTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}
