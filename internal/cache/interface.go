package cache

import (
	"context"
	"time"
)

// Service defines the interface for byte-oriented caching operations
// External packages should use this interface, not the concrete implementations
type Service interface {
	// Get returns models.ErrCacheMiss when the key is absent or expired
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
