package app

import (
	"context"
	"testing"
	"time"

	"AIOverview_Analysis/internal/cache"
	"AIOverview_Analysis/internal/config"
	"AIOverview_Analysis/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		LogBackend:              config.LogBackendConsole,
		LogLevel:                "error",
		LogFormat:               "json",
		CacheType:               config.CacheTypeMemory,
		CacheTTL:                time.Minute,
		SerpAPIURL:              "http://127.0.0.1:0",
		SerpDepth:               10,
		FetchTimeoutSeconds:     1,
		MaxConcurrentFetches:    2,
		ProviderRateLimitPerSec: 5,
		DefaultLocationCode:     "2840",
		DefaultLanguageCode:     "en",
	}
}

func TestNewCache(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name       string
		cacheType  string
		wantCloser bool
		wantErr    bool
	}{
		{"memory", config.CacheTypeMemory, false, false},
		{"none", config.CacheTypeNone, false, false},
		{"redis", config.CacheTypeRedis, true, false},
		{"unsupported", "memcached", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.CacheType = tt.cacheType
			cfg.RedisURL = "redis://" + mr.Addr()

			store, closeFn, err := NewCache(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported cache type")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, store)
			assert.Equal(t, tt.wantCloser, closeFn != nil)
			if closeFn != nil {
				defer closeFn()
			}
		})
	}
}

func TestNewCache_NoneAlwaysMisses(t *testing.T) {
	cfg := testConfig()
	cfg.CacheType = config.CacheTypeNone

	store, _, err := NewCache(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, models.ErrCacheMiss)
}

func TestNewCache_RedisUnreachable(t *testing.T) {
	cfg := testConfig()
	cfg.CacheType = config.CacheTypeRedis
	cfg.RedisURL = "redis://127.0.0.1:1"

	_, _, err := NewCache(cfg)
	assert.Error(t, err)
}

func TestNewLogger_DatabaseFallsBackToConsole(t *testing.T) {
	cfg := testConfig()
	cfg.LogBackend = config.LogBackendDatabase
	cfg.DatabaseURL = "not a postgres url"

	log, err := NewLogger(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database logger unavailable")
	require.NotNil(t, log)
	assert.NoError(t, log.Close())
}

func TestBuild(t *testing.T) {
	components, err := Build(testConfig())
	require.NoError(t, err)
	defer components.Close()

	assert.NotNil(t, components.Logger)
	assert.IsType(t, &cache.MemoryCache{}, components.Cache)
	assert.NotNil(t, components.Fetcher)
	require.NotNil(t, components.Analysis)

	// no API key: the fetch fails before any network call
	_, err = components.Analysis.FetchAndAnalyze(context.Background(), models.FetchAnalysisRequest{
		Keywords:    []string{"best crm"},
		BrandName:   "Acme",
		BrandDomain: "acme.com",
	})
	assert.ErrorIs(t, err, models.ErrMissingAPIKey)
}

func TestBuild_UnsupportedCache(t *testing.T) {
	cfg := testConfig()
	cfg.CacheType = "memcached"

	components, err := Build(cfg)
	assert.Error(t, err)
	assert.Nil(t, components)
}
