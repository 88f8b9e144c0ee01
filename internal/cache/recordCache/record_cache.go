package recordCache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AIOverview_Analysis/internal/cache"
	"AIOverview_Analysis/internal/normalizer"
)

// recordCache implements Service using a generic cache
type recordCache struct {
	cache cache.Service
	ttl   time.Duration
}

// New creates a SERP record cache on top of store
func New(store cache.Service, ttl time.Duration) Service {
	return &recordCache{
		cache: store,
		ttl:   ttl,
	}
}

// Key builds the cache key. Keywords differing only in case or surrounding space share an entry.
func Key(location, language, keyword string) string {
	return fmt.Sprintf("serp:%s:%s:%s", location, language, normalizer.Normalize(keyword))
}

// Get retrieves a cached payload; a miss surfaces as models.ErrCacheMiss
func (r *recordCache) Get(ctx context.Context, location, language, keyword string) (json.RawMessage, error) {
	data, err := r.cache.Get(ctx, Key(location, language, keyword))
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("cached payload for %q is not valid JSON", keyword)
	}
	return json.RawMessage(data), nil
}

// Set stores a payload. Empty payloads are never cached.
func (r *recordCache) Set(ctx context.Context, location, language, keyword string, payload json.RawMessage) error {
	if len(payload) == 0 {
		return nil
	}
	return r.cache.Set(ctx, Key(location, language, keyword), payload, r.ttl)
}

// Delete removes the cached payload for the keyword
func (r *recordCache) Delete(ctx context.Context, location, language, keyword string) error {
	return r.cache.Delete(ctx, Key(location, language, keyword))
}
