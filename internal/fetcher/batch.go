package fetcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"AIOverview_Analysis/internal/cache/recordCache"
	"AIOverview_Analysis/internal/logger"
	"AIOverview_Analysis/internal/metrics"
	"AIOverview_Analysis/internal/models"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Batch implements BatchService on top of a single-keyword Service
type Batch struct {
	fetcher       Service
	recordCache   recordCache.Service
	limiter       *rate.Limiter
	logger        logger.Service
	maxConcurrent int
}

// NewBatch creates a batch fetcher. limiter paces provider calls; cache hits bypass it.
func NewBatch(
	fetcher Service,
	recordCache recordCache.Service,
	limiter *rate.Limiter,
	logger logger.Service,
	maxConcurrent int,
) BatchService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Batch{
		fetcher:       fetcher,
		recordCache:   recordCache,
		limiter:       limiter,
		logger:        logger,
		maxConcurrent: maxConcurrent,
	}
}

// FetchAll fetches every keyword and returns one record per keyword in input order.
// A keyword whose fetch fails yields a record with a nil payload. The batch fails only when
// ctx ends, the API key is missing, or no keyword could be fetched at all.
func (b *Batch) FetchAll(ctx context.Context, keywords []string, locationCode, languageCode string, progress models.ProgressFunc) ([]models.RawResultRecord, error) {
	if len(keywords) == 0 {
		return nil, models.ErrNoKeywords
	}

	start := time.Now()
	b.logger.LogInfo(ctx, logger.OpFetchBatch, fmt.Sprintf("Starting fetch of %d keywords", len(keywords)), map[string]interface{}{
		"keywords_count": len(keywords),
		"location_code":  locationCode,
		"language_code":  languageCode,
	})

	records := make([]models.RawResultRecord, len(keywords))
	failures := make([]error, len(keywords))

	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.maxConcurrent)

	for i, keyword := range keywords {
		g.Go(func() error {
			record, err := b.fetchOne(gctx, keyword, locationCode, languageCode)
			if err != nil {
				if gctx.Err() != nil || errors.Is(err, models.ErrMissingAPIKey) {
					return err
				}
				failures[i] = err
				record = models.RawResultRecord{Keyword: keyword}
			}
			records[i] = record

			mu.Lock()
			completed++
			if progress != nil {
				progress(completed, len(keywords))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		b.logger.LogError(ctx, logger.OpFetchBatch, "", "Keyword fetch aborted", err, models.LogSeverityHigh, map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, err
	}

	failed := 0
	var firstErr error
	for _, err := range failures {
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if failed == len(keywords) {
		b.logger.LogError(ctx, logger.OpFetchBatch, "", "Every keyword fetch failed", firstErr, models.LogSeverityHigh, map[string]interface{}{
			"keywords_count": len(keywords),
			"duration_ms":    time.Since(start).Milliseconds(),
		})
		return nil, firstErr
	}

	b.logger.LogSuccess(ctx, logger.OpFetchBatch, "", "Completed keyword fetch", map[string]interface{}{
		"keywords_count": len(keywords),
		"failed":         failed,
		"duration_ms":    time.Since(start).Milliseconds(),
	})

	return records, nil
}

// fetchOne reads through the record cache, then calls the provider
func (b *Batch) fetchOne(ctx context.Context, keyword, locationCode, languageCode string) (models.RawResultRecord, error) {
	payload, err := b.recordCache.Get(ctx, locationCode, languageCode, keyword)
	switch {
	case err == nil:
		metrics.RecordCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		b.logger.LogSuccess(ctx, logger.OpCacheHit, keyword, "Retrieved SERP result from cache", nil)
		return models.RawResultRecord{Keyword: keyword, Payload: payload}, nil
	case errors.Is(err, models.ErrCacheMiss):
		metrics.RecordCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.RecordCacheLookups.WithLabelValues(metrics.CacheError).Inc()
		b.logger.LogError(ctx, logger.OpCacheMiss, keyword, "Record cache lookup failed", err, models.LogSeverityLow, nil)
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return models.RawResultRecord{Keyword: keyword}, err
		}
	}

	start := time.Now()
	record, err := b.fetcher.Fetch(ctx, keyword, locationCode, languageCode)
	if err != nil {
		b.logger.LogError(ctx, logger.OpFetchKeyword, keyword, "Failed to fetch SERP result", err, models.LogSeverityMedium, map[string]interface{}{
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return record, err
	}

	b.logger.LogSuccess(ctx, logger.OpFetchKeyword, keyword, "Fetched SERP result", map[string]interface{}{
		"payload_size": len(record.Payload),
		"duration_ms":  time.Since(start).Milliseconds(),
	})

	if err := b.recordCache.Set(ctx, locationCode, languageCode, keyword, record.Payload); err != nil {
		b.logger.LogError(ctx, logger.OpCacheSet, keyword, "Failed to cache SERP result", err, models.LogSeverityLow, nil)
	}

	return record, nil
}
