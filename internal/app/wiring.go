// Package app assembles the analysis stack from configuration for the server and the CLI.
package app

import (
	"context"
	"fmt"

	"AIOverview_Analysis/internal/cache"
	"AIOverview_Analysis/internal/cache/recordCache"
	"AIOverview_Analysis/internal/config"
	"AIOverview_Analysis/internal/extractor"
	"AIOverview_Analysis/internal/fetcher"
	"AIOverview_Analysis/internal/logger"
	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/overviewAnalysis"
	"AIOverview_Analysis/internal/ratelimit"
)

// Components is the wired analysis stack
type Components struct {
	Logger   logger.Service
	Cache    cache.Service
	Fetcher  fetcher.BatchService
	Analysis overviewAnalysis.AnalysisService

	closers []func() error
}

// Build wires logger, cache, fetcher and analysis service from cfg.
// A database logger that cannot connect falls back to the console logger.
func Build(cfg *config.Config) (*Components, error) {
	c := &Components{}

	log, logErr := NewLogger(cfg)
	c.Logger = log
	c.closers = append(c.closers, log.Close)
	if logErr != nil {
		ctx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())
		log.LogError(ctx, logger.OpServerStart, "", "Falling back to console logger", logErr, models.LogSeverityMedium, nil)
	}

	store, closeStore, err := NewCache(cfg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Cache = store
	if closeStore != nil {
		c.closers = append(c.closers, closeStore)
	}

	c.Fetcher = NewBatchFetcher(cfg, log, store)
	c.Analysis = overviewAnalysis.NewService(
		extractor.NewExtractor(),
		c.Fetcher,
		log,
		cfg.DefaultLocationCode,
		cfg.DefaultLanguageCode,
	)

	return c, nil
}

// Close releases the cache connection and flushes the logger, in reverse wiring order
func (c *Components) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// NewLogger returns the configured logger backend
func NewLogger(cfg *config.Config) (logger.Service, error) {
	if cfg.LogBackend != config.LogBackendDatabase {
		return logger.NewZapLogger(cfg.LogLevel, cfg.LogFormat), nil
	}

	db, err := logger.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		return logger.NewZapLogger(cfg.LogLevel, cfg.LogFormat), fmt.Errorf("database logger unavailable: %w", err)
	}
	return logger.NewDatabaseLogger(db), nil
}

// NewCache returns the configured byte cache and, when it holds a connection, its close func
func NewCache(cfg *config.Config) (cache.Service, func() error, error) {
	switch cfg.CacheType {
	case config.CacheTypeRedis:
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, redisCache.Close, nil
	case config.CacheTypeMemory:
		return cache.NewMemoryCache(cfg.CacheTTL), nil, nil
	case config.CacheTypeNone:
		return cache.NewNoopCache(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}

// NewBatchFetcher wires the SERP client behind the record cache and the provider rate limit
func NewBatchFetcher(cfg *config.Config, log logger.Service, store cache.Service) fetcher.BatchService {
	single := fetcher.NewHTTPFetcher(cfg.SerpAPIURL, cfg.SerpAPIKey, cfg.SerpDepth, cfg.FetchTimeout())
	return fetcher.NewBatch(
		single,
		recordCache.New(store, cfg.CacheTTL),
		ratelimit.NewProviderLimiter(cfg.ProviderRateLimitPerSec),
		log,
		cfg.MaxConcurrentFetches,
	)
}
