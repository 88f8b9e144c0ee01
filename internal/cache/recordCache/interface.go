package recordCache

import (
	"context"
	"encoding/json"
)

// Service caches raw SERP payloads per keyword, location and language
type Service interface {
	Get(ctx context.Context, location, language, keyword string) (json.RawMessage, error)
	Set(ctx context.Context, location, language, keyword string, payload json.RawMessage) error
	Delete(ctx context.Context, location, language, keyword string) error
}
