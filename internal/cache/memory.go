package cache

import (
	"context"
	"fmt"
	"time"

	"AIOverview_Analysis/internal/models"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements Service on an in-process go-cache store
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(defaultTTL time.Duration) Service {
	return newMemoryCache(defaultTTL)
}

func newMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, 5*time.Minute),
	}
}

// Get retrieves a cached value for the given key
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, found := m.cache.Get(key)
	if !found {
		return nil, models.ErrCacheMiss
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected type in memory cache: %T", val)
	}
	return data, nil
}

// Set stores a copy of value with the specified TTL
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("TTL must be positive, got: %v", ttl)
	}
	m.cache.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes an entry from the cache
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

// Size returns the current number of cached entries, expired ones included until cleanup
func (m *MemoryCache) Size() int {
	return m.cache.ItemCount()
}

// NoopCache never stores anything; every Get is a miss
type NoopCache struct{}

// NewNoopCache is used when CACHE_TYPE=none
func NewNoopCache() Service {
	return NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, models.ErrCacheMiss
}

func (NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}
