package main

import (
	"climate-pipeline/internal/config"
	"climate-pipeline/internal/observability"
	"climate-pipeline/internal/pipeline"
	"climate-pipeline/internal/store"
	"climate-pipeline/pkg/utils"
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

	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "pipeline output directory to load the current run from")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file")
	runDir := flag.String("run", "", "load this run directory instead of the current one")
	flag.Parse()

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat).With("component", "setupdb")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *runDir, logger); err != nil {
		logger.Error("database setup failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, runDir string, logger *slog.Logger) error {
	if runDir == "" {
		dir, err := utils.NewOutputManager(cfg.OutputDir).CurrentRunDir()
		if err != nil {
			return err
		}
		runDir = dir
	}

	ds, manifest, err := pipeline.ReadArtifacts(runDir)
	if err != nil {
		return err
	}
	logger.Info("artifacts read", "run_dir", runDir, "run_id", manifest.RunID, "records", len(ds.Annual))

	st, err := store.Open(ctx, store.DefaultConfig(cfg.DBPath))
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Load(ctx, ds, manifest); err != nil {
		return err
	}

	report, err := st.Verify(ctx)
	if err != nil {
		return err
	}
	logger.Info("database loaded",
		"db", cfg.DBPath,
		"annual_rows", report.AnnualCount,
		"decade_rows", report.DecadeCount,
		"trend_rows", report.TrendCount,
		"run_id", report.LastRunID,
		"loaded_at", report.LastLoadedAt,
	)
	for _, r := range report.Latest {
		attrs := []any{"year", r.Year, "anomaly", r.Anomaly}
		if r.MovingAverage5yr != nil {
			attrs = append(attrs, "moving_average_5yr", *r.MovingAverage5yr)
		}
		logger.Info("latest year", attrs...)
	}
	return nil
}
