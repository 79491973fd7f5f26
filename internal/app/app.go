// Package app wires the trip service together and runs the HTTP server.
package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minjae-dev/trips/internal/handler"
	"github.com/minjae-dev/trips/internal/middleware"
	"github.com/minjae-dev/trips/internal/obs"
	"github.com/minjae-dev/trips/internal/searchclient"
	"github.com/minjae-dev/trips/internal/trip"
	"github.com/minjae-dev/trips/internal/trip/cache"
	"github.com/minjae-dev/trips/internal/trip/ratelimit"
)

// Run initializes and runs the application.
func Run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	metrics := obs.New()

	client := searchclient.New(cfg.SearchServiceURL, cfg.SearchTimeout)

	responseCache, err := newCache(cfg, logger)
	if err != nil {
		logger.Error("cache initialization failed", "error", err)
		return err
	}
	defer func() {
		_ = responseCache.Close()
	}()

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Close()

	pipeline := trip.New(client, responseCache, metrics, logger)
	h := handler.New(pipeline, limiter, metrics, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/trips/search", h.SearchHandler)
	mux.HandleFunc("GET /api/trips/offers", h.OffersHandler)
	mux.HandleFunc("GET /healthz", obs.HealthHandler(logger))
	mux.Handle("GET /metrics", metrics.Handler())

	wrappedHandler := middleware.Logging(logger)(mux)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      wrappedHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "search_service", cfg.SearchServiceURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

func newCache(cfg *Config, logger *slog.Logger) (cache.Cache, error) {
	if cfg.CacheBackend == "redis" {
		return cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL, logger)
	}
	return cache.NewMemory(cfg.CacheTTL), nil
}
