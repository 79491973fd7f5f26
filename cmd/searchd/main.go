// Command searchd is a mock trip-search service for local development. It
// answers POST /api/trips/search with generated flight offers, hotel
// records, and an exchange-rate table the real collaborator would return,
// and refreshes its exchange rates on a schedule.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
)

func main() {
	port := getEnv("PORT", "8090")
	refreshSpec := getEnv("RATE_REFRESH", "@every 1h")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	board := NewRateBoard()
	board.Refresh()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(refreshSpec, func() {
		board.Refresh()
		logger.Info("exchange rates refreshed", "updated_at", board.Snapshot().UpdatedAt)
	}); err != nil {
		logger.Error("invalid rate refresh spec", "spec", refreshSpec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	svc := NewSearchService(board, logger)

	mux := http.NewServeMux()
	mux.Handle("POST /api/trips/search", svc)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write healthz response", "error", err)
		}
	})

	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("search service listening", "addr", addr, "rate_refresh", refreshSpec)
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
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
