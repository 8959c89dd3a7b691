package bag

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

type fakeBlobStore struct {
	data map[string]string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{data: make(map[string]string)}
}

func (f *fakeBlobStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeBlobStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeBlobStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeBlobStore) BagKey(sessionID string) string {
	return "slg:bag:" + sessionID
}

func newTestStore(t *testing.T, buf *bytes.Buffer) (*Store, *fakeBlobStore) {
	t.Helper()
	fake := newFakeBlobStore()
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: buf})
	store, err := NewStore(fake, logg, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, fake
}

func TestStoreSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, &bytes.Buffer{})

	b := Bag{}.AddItem(uuid.New(), 50, 3)
	if err := store.Save(ctx, "sess-1", b); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.TotalItems() != 3 {
		t.Fatalf("expected total 3, got %d", loaded.TotalItems())
	}

	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	loaded, err = store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if !loaded.IsEmpty() {
		t.Fatalf("expected empty bag after clear, got %+v", loaded)
	}
}

func TestStoreLoadMissingSessionIsEmpty(t *testing.T) {
	store, _ := newTestStore(t, &bytes.Buffer{})
	loaded, err := store.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.IsEmpty() {
		t.Fatalf("expected empty bag, got %+v", loaded)
	}
}

func TestStoreLoadCorruptBlobLogsAndReturnsEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	store, fake := newTestStore(t, buf)
	fake.data[fake.BagKey("sess-1")] = "{corrupt"

	loaded, err := store.Load(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.IsEmpty() {
		t.Fatalf("expected empty bag, got %+v", loaded)
	}
	if !bytes.Contains(buf.Bytes(), []byte("corrupt bag blob")) {
		t.Fatalf("expected corruption to be logged; got %s", buf.String())
	}
}
