package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process cache backed by go-cache
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-process cache; expired entries are purged every cleanupInterval
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Flush(_ context.Context) error {
	m.store.Flush()
	return nil
}
