package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/metrics"
	"github.com/C00lPIXER/aperture/pkg/outbox"
	"github.com/C00lPIXER/aperture/pkg/outbox/payloads"
)

// ErrInsufficientBalance is returned by Debit when the wallet is missing or
// does not cover the amount.
var ErrInsufficientBalance = pkgerrors.New(pkgerrors.CodeInsufficientFunds, "Insufficient wallet balance")

// Service moves money in and out of wallets. Debit and Credit run inside the
// caller's transaction.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*View, error)
	Debit(ctx context.Context, tx *gorm.DB, m Movement) (decimal.Decimal, error)
	Credit(ctx context.Context, tx *gorm.DB, m Movement) (decimal.Decimal, error)
}

type service struct {
	repo    *Repository
	outbox  outbox.Emitter
	metrics *metrics.StoreMetrics
}

type ServiceParams struct {
	Repo    *Repository
	Outbox  outbox.Emitter
	Metrics *metrics.StoreMetrics
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("wallet repository required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{repo: params.Repo, outbox: params.Outbox, metrics: params.Metrics}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	view := &View{Balance: decimal.Zero, Transactions: []TransactionDTO{}}
	w, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wallet")
	}
	view.Balance = w.Balance

	rows, err := s.repo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wallet history")
	}
	for _, row := range rows {
		view.Transactions = append(view.Transactions, transactionFromModel(row))
	}
	return view, nil
}

func (s *service) Debit(ctx context.Context, tx *gorm.DB, m Movement) (decimal.Decimal, error) {
	if err := validateMovement(tx, m); err != nil {
		return decimal.Zero, err
	}
	repo := s.repo.WithTx(tx)
	ok, err := repo.Debit(ctx, m.UserID, m.Amount)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit wallet")
	}
	if !ok {
		return decimal.Zero, ErrInsufficientBalance
	}
	return s.record(ctx, tx, repo, m, enums.WalletTransactionDebit)
}

func (s *service) Credit(ctx context.Context, tx *gorm.DB, m Movement) (decimal.Decimal, error) {
	if err := validateMovement(tx, m); err != nil {
		return decimal.Zero, err
	}
	repo := s.repo.WithTx(tx)
	if err := repo.Credit(ctx, m.UserID, m.Amount); err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit wallet")
	}
	return s.record(ctx, tx, repo, m, enums.WalletTransactionCredit)
}

// record appends the history row and queues the wallet event.
func (s *service) record(ctx context.Context, tx *gorm.DB, repo *Repository, m Movement, kind enums.WalletTransactionType) (decimal.Decimal, error) {
	entry := &models.WalletTransaction{
		UserID:      m.UserID,
		Type:        kind,
		Amount:      m.Amount,
		Description: m.Description,
		OrderID:     m.OrderID,
	}
	if err := repo.InsertTransaction(ctx, entry); err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wallet history")
	}

	w, err := repo.Find(ctx, m.UserID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wallet")
	}

	eventType := enums.EventWalletCredited
	if kind == enums.WalletTransactionDebit {
		eventType = enums.EventWalletDebited
	}
	event := outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateWallet,
		AggregateID:   m.UserID,
		Actor:         &outbox.ActorRef{UserID: m.UserID},
		Data: payloads.WalletMovementEvent{
			UserID:      m.UserID,
			Type:        kind,
			Amount:      m.Amount,
			Balance:     w.Balance,
			Description: m.Description,
			OrderID:     m.OrderID,
		},
	}
	if err := s.outbox.Emit(ctx, tx, event); err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit wallet event")
	}
	s.metrics.WalletMovement(kind.String(), m.Amount)
	return w.Balance, nil
}

func validateMovement(tx *gorm.DB, m Movement) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if m.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !m.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	return nil
}
