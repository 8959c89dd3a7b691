package bag

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

type blobStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type bagKeyer interface {
	BagKey(sessionID string) string
}

// Store persists bag blobs in Redis keyed by the shopper's bag session. It is
// the server-side analog of the browser's local-storage slot.
type Store struct {
	store blobStore
	keyer bagKeyer
	logg  *logger.Logger
	ttl   time.Duration
}

// StoreClient is the combined Redis surface the store needs.
type StoreClient interface {
	blobStore
	bagKeyer
}

// NewStore builds a bag store with the required dependencies.
func NewStore(client StoreClient, logg *logger.Logger, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("bag session ttl must be positive")
	}
	return &Store{store: client, keyer: client, logg: logg, ttl: ttl}, nil
}

// Load fetches the bag for a session. Missing or corrupt blobs yield an empty
// bag; corruption is logged, never surfaced.
func (s *Store) Load(ctx context.Context, sessionID string) (Bag, error) {
	raw, err := s.store.Get(ctx, s.keyer.BagKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Bag{}, nil
		}
		return Bag{}, err
	}

	decoded, err := Decode([]byte(raw))
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "discarding corrupt bag blob")
		return Bag{}, nil
	}
	return decoded, nil
}

// Save writes the bag blob, refreshing the session TTL.
func (s *Store) Save(ctx context.Context, sessionID string, b Bag) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.keyer.BagKey(sessionID), string(data), s.ttl)
}

// Clear removes the stored bag for a session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, s.keyer.BagKey(sessionID))
}
