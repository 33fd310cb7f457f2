package main

import (
	"climate-pipeline/internal/api"
	"climate-pipeline/internal/api/handler"
	"climate-pipeline/internal/config"
	"climate-pipeline/internal/observability"
	"climate-pipeline/internal/store"
	"climate-pipeline/pkg/router"
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
)

// @title Climate Data API
// @version 1.0
// @description Read-only API over the processed global temperature anomaly dataset.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file")
	flag.Parse()

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.DefaultConfig(cfg.DBPath))
	if err != nil {
		logger.Error("failed to open store", "db", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	r := router.New(router.Options{
		Logger:      logger.With("component", "http"),
		CORSOrigins: cfg.CORSOrigins,
		Observer:    metrics,
	})
	api.RegisterRoutes(r, handler.NewClimateHandler(st, logger, metrics), nil)

	srv := r.Server(cfg.HTTPAddr)
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr, "routes", len(r.Paths()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
