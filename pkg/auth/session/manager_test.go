package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return "sess:" + accessID
}

func TestManagerGenerateAndRotate(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, ttl: time.Hour}
	ctx := context.Background()
	userID := uuid.New()

	token, err := manager.Generate(ctx, "access-123", userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	stored := store.data[store.AccessSessionKey("access-123")]
	if stored == "" || strings.Contains(stored, token) {
		t.Fatalf("expected hashed session payload, got %q", stored)
	}

	if _, _, _, err := manager.Rotate(ctx, "access-123", "wrong"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid refresh token error, got %v", err)
	}

	gotUser, newAccessID, newToken, err := manager.Rotate(ctx, "access-123", token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if gotUser != userID {
		t.Fatalf("expected user %s, got %s", userID, gotUser)
	}
	if newToken == token || newAccessID == "access-123" {
		t.Fatal("expected fresh access id and token")
	}
	if _, exists := store.data[store.AccessSessionKey("access-123")]; exists {
		t.Fatal("old access key left behind")
	}

	if _, _, _, err := manager.Rotate(ctx, "access-123", token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("replayed refresh token should fail, got %v", err)
	}
}

func TestManagerRevokeAndHasSession(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, ttl: time.Hour}
	ctx := context.Background()

	if _, err := manager.Generate(ctx, "a1", uuid.New()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	ok, err := manager.HasSession(ctx, "a1")
	if err != nil || !ok {
		t.Fatalf("expected active session, ok=%v err=%v", ok, err)
	}
	if err := manager.Revoke(ctx, "a1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = manager.HasSession(ctx, "a1")
	if err != nil || ok {
		t.Fatalf("expected revoked session, ok=%v err=%v", ok, err)
	}
}

func TestManagerGenerateValidatesInput(t *testing.T) {
	manager := &Manager{store: newMockStore(), ttl: time.Hour}
	if _, err := manager.Generate(context.Background(), "", uuid.New()); err == nil {
		t.Fatal("expected error for empty access id")
	}
	if _, err := manager.Generate(context.Background(), "a", uuid.Nil); err == nil {
		t.Fatal("expected error for nil user")
	}
}
