package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httphandler "subtitrari-noi-addon/internal/adapter/http"
	"subtitrari-noi-addon/internal/adapter/provider"
	"subtitrari-noi-addon/internal/adapter/site/subtitrarinoi"
	"subtitrari-noi-addon/internal/config"
	"subtitrari-noi-addon/internal/domain/cache"
	"subtitrari-noi-addon/internal/platform/logger"
	"subtitrari-noi-addon/internal/platform/metrics"
	"subtitrari-noi-addon/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	metadata := provider.NewMetadataProvider(cfg.OMDbAPIKey, cfg.OMDbBaseURL)
	if metadata.ID() == "void" {
		log.Warn("OMDB_API_KEY not set, titles will not be resolved")
	}

	site := subtitrarinoi.New(cfg.SiteBaseURL)
	memCache := cache.NewMemoryCache()
	met := metrics.New()

	pipeline := service.NewPipeline(metadata, site, site, memCache, service.WithMetrics(met))
	handler := httphandler.NewHandler(pipeline)
	router := httphandler.NewRouter(handler, log, met, func() {
		met.SetCacheEntries(memCache.Len())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", cfg.Port,
		"metadata_provider", metadata.ID(),
		"site", cfg.SiteBaseURL,
		"cache_ttl", memCache.TTL().String(),
		"manifest", "http://localhost:"+cfg.Port+"/manifest.json",
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
