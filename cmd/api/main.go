package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/checksplit/checksplit-backend/internal/adapters/vision"
	"github.com/checksplit/checksplit-backend/internal/api"
	"github.com/checksplit/checksplit-backend/internal/api/handlers"
	"github.com/checksplit/checksplit-backend/internal/infrastructure/config"
	"github.com/checksplit/checksplit-backend/internal/observability"
	"github.com/checksplit/checksplit-backend/internal/session"
)

func main() {
	cfg := config.LoadOrEnv()
	logger := observability.NewLogger(cfg.Observability.Logging)

	store := session.NewStore(time.Duration(cfg.Sessions.TTLMinutes) * time.Minute)

	var scanner handlers.ReceiptScanner
	if cfg.OpenAI.APIKey != "" {
		client := vision.NewHTTPClient(cfg.OpenAI.APIKey)
		scanner = vision.NewScanner(client, cfg.OpenAI.Model)
		logger.Info("receipt scanning enabled", "model", cfg.OpenAI.Model)
	} else {
		logger.Warn("no OpenAI API key configured, receipt scanning disabled")
	}

	metrics := observability.NewMetrics(func() float64 {
		return float64(store.Len())
	})

	srv := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, store, scanner, metrics, logger)

	stop := make(chan struct{})
	go store.StartSweeper(time.Duration(cfg.Sessions.SweepMinutes)*time.Minute, stop)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		close(stop)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
