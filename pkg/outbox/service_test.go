package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/C00lPIXER/aperture/pkg/db/dbtest"
	"github.com/C00lPIXER/aperture/pkg/db/models"
	"github.com/C00lPIXER/aperture/pkg/enums"
	"github.com/C00lPIXER/aperture/pkg/logger"
	"github.com/C00lPIXER/aperture/pkg/outbox"
)

func TestEmitWritesEnvelopeInsideTx(t *testing.T) {
	client, conn := dbtest.Client(t)
	repo := outbox.NewRepository(conn)
	svc := outbox.NewService(repo, logger.Nop())
	orderID := uuid.New()
	actor := uuid.New()

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPlaced,
			AggregateType: enums.AggregateOrder,
			AggregateID:   orderID,
			Actor:         &outbox.ActorRef{UserID: actor},
			Data:          map[string]string{"order_id": orderID.String()},
		})
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	var row models.OutboxEvent
	if err := conn.First(&row, "aggregate_id = ?", orderID).Error; err != nil {
		t.Fatalf("load outbox row: %v", err)
	}
	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(row.Payload, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Version != 1 || envelope.EventID == "" || envelope.Actor == nil || envelope.Actor.UserID != actor {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestEmitRolledBackWithTx(t *testing.T) {
	client, conn := dbtest.Client(t)
	svc := outbox.NewService(outbox.NewRepository(conn), nil)

	_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := svc.Emit(context.Background(), tx, outbox.DomainEvent{
			EventType:     enums.EventWalletCredited,
			AggregateType: enums.AggregateWallet,
			AggregateID:   uuid.New(),
			Data:          map[string]int{"amount": 10},
		}); err != nil {
			return err
		}
		return errors.New("abort")
	})

	var count int64
	conn.Model(&models.OutboxEvent{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected rollback to discard event, got %d rows", count)
	}
}

func TestEmitValidatesInput(t *testing.T) {
	svc := outbox.NewService(outbox.NewRepository(nil), nil)
	if err := svc.Emit(context.Background(), nil, outbox.DomainEvent{}); err == nil {
		t.Fatal("expected transaction required error")
	}
	conn := dbtest.Open(t)
	if err := svc.Emit(context.Background(), conn, outbox.DomainEvent{EventType: "bogus", AggregateType: enums.AggregateOrder}); err == nil {
		t.Fatal("expected unknown event type error")
	}
}

func TestRepositoryPublishLifecycle(t *testing.T) {
	conn := dbtest.Open(t)
	repo := outbox.NewRepository(conn)
	old := time.Now().UTC().Add(-48 * time.Hour)

	rows := []models.OutboxEvent{
		{EventType: enums.EventOrderPlaced, AggregateType: enums.AggregateOrder, AggregateID: uuid.New(), Payload: json.RawMessage(`{}`), CreatedAt: old},
		{EventType: enums.EventOrderPlaced, AggregateType: enums.AggregateOrder, AggregateID: uuid.New(), Payload: json.RawMessage(`{}`), CreatedAt: old.Add(time.Minute)},
		{EventType: enums.EventOrderPlaced, AggregateType: enums.AggregateOrder, AggregateID: uuid.New(), Payload: json.RawMessage(`{}`), AttemptCount: 10, CreatedAt: old},
	}
	for _, row := range rows {
		if err := repo.Insert(conn, row); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	pending, err := repo.FetchUnpublishedForPublish(conn, 10, 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 publishable rows, got %d", len(pending))
	}
	if !pending[0].CreatedAt.Before(pending[1].CreatedAt) {
		t.Fatalf("expected oldest first")
	}

	if err := repo.MarkPublishedTx(conn, pending[0].ID); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	if err := repo.MarkFailedTx(conn, pending[1].ID, errors.New("unavailable")); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	var failed models.OutboxEvent
	conn.First(&failed, "id = ?", pending[1].ID)
	if failed.AttemptCount != 1 || failed.LastError == nil || *failed.LastError != "unavailable" {
		t.Fatalf("unexpected failed row %+v", failed)
	}

	// Published rows only become eligible for deletion after they age past the cutoff.
	conn.Model(&models.OutboxEvent{}).Where("id = ?", pending[0].ID).Update("published_at", old)

	deleted, err := repo.DeletePublishedBefore(conn, time.Now().UTC().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected published and exhausted rows deleted, got %d", deleted)
	}
}

func TestDLQRepositoryRoundTrip(t *testing.T) {
	conn := dbtest.Open(t)
	repo := outbox.NewDLQRepository(conn)
	eventID := uuid.New()
	msg := "topic missing"

	err := repo.InsertTx(conn, models.OutboxDLQ{
		EventID:       eventID,
		EventType:     enums.EventWalletCredited,
		AggregateType: enums.AggregateWallet,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{"version":1}`),
		ErrorReason:   enums.OutboxDLQReasonNonRetryable,
		ErrorMessage:  &msg,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	found, err := repo.FindByEventID(context.Background(), eventID)
	if err != nil || found == nil {
		t.Fatalf("find: %v %v", found, err)
	}
	if found.ErrorMessage == nil || *found.ErrorMessage != msg {
		t.Fatalf("unexpected message %v", found.ErrorMessage)
	}

	missing, err := repo.FindByEventID(context.Background(), uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown event, got %v %v", missing, err)
	}

	counts, err := repo.CountByReason(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[enums.OutboxDLQReasonNonRetryable] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}

	if err := repo.InsertTx(conn, models.OutboxDLQ{EventID: uuid.New(), ErrorReason: "bogus"}); err == nil {
		t.Fatalf("expected unknown reason to be rejected")
	}
}
