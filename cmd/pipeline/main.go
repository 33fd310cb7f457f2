package main

import (
	"climate-pipeline/internal/config"
	"climate-pipeline/internal/observability"
	"climate-pipeline/internal/pipeline"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags default to the loaded config so they only override when given
	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "path to the whitespace-delimited anomaly table")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "directory that holds run directories and the current symlink")
	flag.BoolVar(&cfg.ExportParquet, "parquet", cfg.ExportParquet, "also write the annual series as parquet")
	flag.IntVar(&cfg.KeepRuns, "keep", cfg.KeepRuns, "number of run directories to retain")
	flag.Parse()

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat).With("component", "pipeline")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, pipeline.Options{
		InputPath: cfg.InputPath,
		OutputDir: cfg.OutputDir,
		Parquet:   cfg.ExportParquet,
		KeepRuns:  cfg.KeepRuns,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("pipeline failed", "input", cfg.InputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("artifact set published",
		"run_id", res.RunID,
		"run_dir", res.RunDir,
		"records", res.Manifest.RecordCount,
		"decades", res.Manifest.DecadeCount,
	)
}
