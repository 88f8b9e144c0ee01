package fetcher

import (
	"context"

	"AIOverview_Analysis/internal/models"
)

// Service defines the interface for fetching one keyword's SERP result
// External packages should use this interface, not the concrete implementations
type Service interface {
	Fetch(ctx context.Context, keyword, locationCode, languageCode string) (models.RawResultRecord, error)
}

// BatchService fetches many keywords concurrently, preserving input order
type BatchService interface {
	FetchAll(ctx context.Context, keywords []string, locationCode, languageCode string, progress models.ProgressFunc) ([]models.RawResultRecord, error)
}
