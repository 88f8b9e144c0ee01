package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"AIOverview_Analysis/internal/app"
	"AIOverview_Analysis/internal/config"
	"AIOverview_Analysis/internal/http"
	"AIOverview_Analysis/internal/logger"
	"AIOverview_Analysis/internal/models"
	"AIOverview_Analysis/internal/ratelimit"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Wire logger, cache, SERP fetcher and analysis service
	components, err := app.Build(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize components: %v", err)
	}
	defer components.Close()

	appLogger := components.Logger

	// Create internal log event for startup
	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting AI Overview Analysis API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":                   cfg.Port,
			"log_backend":            cfg.LogBackend,
			"cache_type":             cfg.CacheType,
			"cache_ttl":              cfg.CacheTTL.Seconds(),
			"max_concurrent_fetches": cfg.MaxConcurrentFetches,
			"serp_api_key_set":       cfg.SerpAPIKey != "",
		},
	})

	rateLimiter := ratelimit.NewTwoTierRateLimiter(cfg.GlobalRateLimitPerSec, cfg.PerIPRateLimitPerSec)

	// Initialize HTTP handler
	handler := http.NewHandler(components.Analysis, appLogger, cfg.MaxUploadBytes)

	// Initialize server
	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		rateLimiter,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			appLogger.LogError(
				startupCtx,
				logger.OpServerStart,
				"",
				"Server failed to start",
				err,
				models.LogSeverityHigh,
				map[string]interface{}{"addr": addr},
			)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("AI Overview Analysis API server started on %s\n", addr)
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health                  - Health check")
	fmt.Println("  GET  /metrics                 - Prometheus metrics")
	fmt.Println("  POST /api/analyze             - Analyze result records")
	fmt.Println("  POST /api/fetch-analysis      - Fetch keywords live and analyze")
	fmt.Println("  POST /api/upload-analysis     - Analyze an uploaded result file")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down server...")

	ctx, cancel := context.WithTimeout(startupCtx, cfg.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(ctx, logger.OpServerShutdown, "", "Server shutdown error", err, models.LogSeverityMedium, nil)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("Server shutdown completed")
	}
}
