package wallet

import (
	"context"
	stdErrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db"
	"github.com/C00lPIXER/aperture/pkg/db/dbtest"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/metrics"
	"github.com/C00lPIXER/aperture/pkg/outbox"
)

func newWalletService(t *testing.T) (Service, *db.Client, *gorm.DB) {
	t.Helper()
	client, conn := dbtest.Client(t)
	svc, err := NewService(ServiceParams{
		Repo:    NewRepository(conn),
		Outbox:  outbox.NewService(outbox.NewRepository(conn), nil),
		Metrics: metrics.NewStoreMetrics(prometheus.NewRegistry()),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, client, conn
}

func TestGetWithoutWalletReportsZero(t *testing.T) {
	svc, _, _ := newWalletService(t)
	view, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !view.Balance.IsZero() || len(view.Transactions) != 0 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestCreditCreatesWalletThenDebit(t *testing.T) {
	svc, client, conn := newWalletService(t)
	user := dbtest.NewFixtures(t, conn).User("w@example.com")
	ctx := context.Background()
	orderID := uuid.New()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		balance, err := svc.Credit(ctx, tx, Movement{UserID: user.ID, Amount: decimal.NewFromInt(1000), Description: "Refund for order " + orderID.String(), OrderID: &orderID})
		if err != nil {
			return err
		}
		if !balance.Equal(decimal.NewFromInt(1000)) {
			t.Fatalf("expected balance 1000, got %s", balance)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("credit: %v", err)
	}

	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := svc.Debit(ctx, tx, Movement{UserID: user.ID, Amount: decimal.NewFromInt(400), Description: "Order payment"})
		return err
	})
	if err != nil {
		t.Fatalf("debit: %v", err)
	}

	view, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !view.Balance.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected 600, got %s", view.Balance)
	}
	if len(view.Transactions) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(view.Transactions))
	}

	var events []models.OutboxEvent
	if err := conn.Order("created_at ASC").Find(&events).Error; err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(events) != 2 || events[0].EventType != enums.EventWalletCredited || events[1].EventType != enums.EventWalletDebited {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestDebitRejectsOverdraft(t *testing.T) {
	svc, client, conn := newWalletService(t)
	user := dbtest.NewFixtures(t, conn).User("poor@example.com")
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := svc.Debit(ctx, tx, Movement{UserID: user.ID, Amount: decimal.NewFromInt(1), Description: "no wallet"})
		return err
	})
	if !stdErrors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance for missing wallet, got %v", err)
	}

	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := svc.Credit(ctx, tx, Movement{UserID: user.ID, Amount: decimal.NewFromInt(50), Description: "top up"})
		return err
	}); err != nil {
		t.Fatalf("credit: %v", err)
	}

	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := svc.Debit(ctx, tx, Movement{UserID: user.ID, Amount: decimal.NewFromInt(51), Description: "too much"})
		return err
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	view, _ := svc.Get(ctx, user.ID)
	if !view.Balance.Equal(decimal.NewFromInt(50)) || len(view.Transactions) != 1 {
		t.Fatalf("overdraft must not change wallet: %+v", view)
	}
}

func TestMovementValidation(t *testing.T) {
	svc, client, _ := newWalletService(t)
	ctx := context.Background()
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := svc.Credit(ctx, tx, Movement{UserID: uuid.New(), Amount: decimal.Zero})
		return err
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Debit(ctx, nil, Movement{UserID: uuid.New(), Amount: decimal.NewFromInt(1)}); !pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error without tx, got %v", err)
	}
}
