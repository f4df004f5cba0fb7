package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryLockStore struct {
	values map[string]string
}

func (m *memoryLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryLockStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryLockStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func TestRedisLockIsExclusiveAndOwnerScoped(t *testing.T) {
	store := &memoryLockStore{values: map[string]string{}}
	ctx := context.Background()
	first, err := NewRedisLock(store, "lock:cron", 0)
	if err != nil {
		t.Fatalf("new lock: %v", err)
	}
	second, _ := NewRedisLock(store, "lock:cron", time.Minute)

	if ok, err := first.Acquire(ctx); err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}
	if ok, _ := second.Acquire(ctx); ok {
		t.Fatal("second worker must not acquire a held lock")
	}
	if err := second.Release(ctx); err != nil {
		t.Fatalf("release by non owner: %v", err)
	}
	if _, held := store.values["lock:cron"]; !held {
		t.Fatal("non owner release dropped the lock")
	}

	// Lock expired and was taken over by another worker.
	store.values["lock:cron"] = "someone-else"
	if err := first.Release(ctx); err != nil {
		t.Fatalf("release after takeover: %v", err)
	}
	if store.values["lock:cron"] != "someone-else" {
		t.Fatal("stale owner deleted a lock it no longer holds")
	}

	delete(store.values, "lock:cron")
	if ok, _ := second.Acquire(ctx); !ok {
		t.Fatal("expected acquire after expiry")
	}
	if err := second.Release(ctx); err != nil {
		t.Fatalf("owner release: %v", err)
	}
	if _, held := store.values["lock:cron"]; held {
		t.Fatal("owner release must delete the key")
	}
}
