package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = "1"
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) AccessSessionKey(accessID string) string {
	return "slg:session:access:" + accessID
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	mgr := &Manager{store: newFakeStore(), keyer: fakeKeyer{}, ttl: time.Minute}

	accessID := NewAccessID()

	ok, err := mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no session before register")
	}

	if err := mgr.Register(ctx, accessID); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	ok, err = mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected session after register")
	}

	if err := mgr.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	ok, err = mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no session after revoke")
	}
}

func TestSessionRequiresAccessID(t *testing.T) {
	ctx := context.Background()
	mgr := &Manager{store: newFakeStore(), keyer: fakeKeyer{}, ttl: time.Minute}

	if err := mgr.Register(ctx, "  "); err == nil {
		t.Fatal("expected error for blank access id")
	}
	if _, err := mgr.HasSession(ctx, ""); err == nil {
		t.Fatal("expected error for blank access id")
	}
	if err := mgr.Revoke(ctx, ""); err == nil {
		t.Fatal("expected error for blank access id")
	}
}
