package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AIOverview_Analysis/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Service using Redis, shared between server replicas
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-based cache
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves the raw bytes stored under key
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: redis get failed: %v", models.ErrCacheUnavailable, err)
	}
	return data, nil
}

// Set stores value in Redis with the specified TTL
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("TTL must be positive, got: %v", ttl)
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set failed: %v", models.ErrCacheUnavailable, err)
	}

	return nil
}

// Delete removes an entry from Redis
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: redis delete failed: %v", models.ErrCacheUnavailable, err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}
