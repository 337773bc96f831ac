package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

type memoryCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewMemoryCache keeps entries in process memory. The cost of an entry is its
// size in bytes and maxCost bounds the total.
func NewMemoryCache(ttl time.Duration, maxCost int64) (Cache, error) {
	if maxCost <= 0 {
		maxCost = DefaultConfig().MaxCost
	}

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	return &memoryCache{cache: c, ttl: ttl}, nil
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.cache.Get(key)
	if !ok {
		return nil, false, nil
	}

	b, ok := v.([]byte)
	if !ok {
		return nil, false, fmt.Errorf("unexpected value of type %T for key %s", v, key)
	}

	return b, true, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte) error {
	if !m.cache.SetWithTTL(key, value, int64(len(value)), m.ttl) {
		log := logging.GetFromContext(ctx)
		log.Debug().Str("key", key).Msg("cache entry was dropped")
		return nil
	}

	// writes are buffered, wait so that the entry is visible to the next Get
	m.cache.Wait()

	return nil
}

func (m *memoryCache) Close() error {
	m.cache.Close()
	return nil
}
