package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var allKeys = []string{
	"PORT", "LOG_BACKEND", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL",
	"CACHE_TYPE", "CACHE_TTL", "REDIS_URL",
	"SERP_API_KEY", "SERP_API_URL", "SERP_DEPTH", "FETCH_TIMEOUT_SECONDS",
	"MAX_CONCURRENT_FETCHES", "PROVIDER_RATE_LIMIT_PER_SEC",
	"DEFAULT_LOCATION_CODE", "DEFAULT_LANGUAGE_CODE",
	"GLOBAL_RATE_LIMIT_PER_SEC", "PER_IP_RATE_LIMIT_PER_SEC", "MAX_UPLOAD_BYTES",
	"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
}

func clearEnv() {
	for _, key := range allKeys {
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv()

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, LogBackendConsole, cfg.LogBackend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, CacheTypeMemory, cfg.CacheType)
	assert.Equal(t, 3600*time.Second, cfg.CacheTTL)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Empty(t, cfg.SerpAPIKey)
	assert.Equal(t, "https://api.dataforseo.com/v3/serp/google/organic/live/advanced", cfg.SerpAPIURL)
	assert.Equal(t, 10, cfg.SerpDepth)
	assert.Equal(t, 60, cfg.FetchTimeoutSeconds)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 50, cfg.MaxConcurrentFetches)
	assert.Equal(t, 20, cfg.ProviderRateLimitPerSec)
	assert.Equal(t, "2840", cfg.DefaultLocationCode)
	assert.Equal(t, "en", cfg.DefaultLanguageCode)
	assert.Equal(t, 100, cfg.GlobalRateLimitPerSec)
	assert.Equal(t, 10, cfg.PerIPRateLimitPerSec)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 15*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.ServerWriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.ServerShutdownTimeout)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearEnv()
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_BACKEND", "database")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("CACHE_TTL", "7200")
	t.Setenv("SERP_API_KEY", "Basic abc")
	t.Setenv("SERP_DEPTH", "20")
	t.Setenv("MAX_CONCURRENT_FETCHES", "5")
	t.Setenv("PROVIDER_RATE_LIMIT_PER_SEC", "3")
	t.Setenv("DEFAULT_LOCATION_CODE", "2826")
	t.Setenv("DEFAULT_LANGUAGE_CODE", "fr")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "60")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, LogBackendDatabase, cfg.LogBackend)
	assert.Equal(t, CacheTypeRedis, cfg.CacheType)
	assert.Equal(t, 7200*time.Second, cfg.CacheTTL)
	assert.Equal(t, "Basic abc", cfg.SerpAPIKey)
	assert.Equal(t, 20, cfg.SerpDepth)
	assert.Equal(t, 5, cfg.MaxConcurrentFetches)
	assert.Equal(t, 3, cfg.ProviderRateLimitPerSec)
	assert.Equal(t, "2826", cfg.DefaultLocationCode)
	assert.Equal(t, "fr", cfg.DefaultLanguageCode)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, 60*time.Second, cfg.ServerShutdownTimeout)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv()
	t.Setenv("SERP_DEPTH", "deep")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "soon")
	t.Setenv("CACHE_TTL", "forever")

	cfg := Load()

	assert.Equal(t, 10, cfg.SerpDepth)
	assert.Equal(t, 60, cfg.FetchTimeoutSeconds)
	assert.Equal(t, 3600*time.Second, cfg.CacheTTL)
}

func TestGetIntEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue int
		expected     int
	}{
		{"uses default when env not set", "", 42, 42},
		{"uses env value when valid int", "100", 42, 100},
		{"uses default when env value is invalid", "not-a-number", 42, 42},
		{"handles negative numbers", "-10", 42, -10},
		{"handles zero", "0", 42, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("TEST_INT")
			if tt.envValue != "" {
				t.Setenv("TEST_INT", tt.envValue)
			}
			assert.Equal(t, tt.expected, getIntEnv("TEST_INT", tt.defaultValue))
		})
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"uses default when env not set", "", 10 * time.Second},
		{"reads whole seconds", "30", 30 * time.Second},
		{"uses default when env value is invalid", "1m", 10 * time.Second},
		{"handles zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("TEST_DURATION")
			if tt.envValue != "" {
				t.Setenv("TEST_DURATION", tt.envValue)
			}
			assert.Equal(t, tt.expected, getDurationEnv("TEST_DURATION", 10*time.Second))
		})
	}
}
