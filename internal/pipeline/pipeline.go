package pipeline

import (
	"climate-pipeline/internal/model"
	"climate-pipeline/pkg/utils"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Options configures a single pipeline run
type Options struct {
	InputPath string
	OutputDir string
	Parquet   bool // also write the annual series as parquet
	KeepRuns  int  // run directories to retain after publish

	Logger *slog.Logger
	Clock  clockwork.Clock
}

// Result describes a published run
type Result struct {
	RunID    string
	RunDir   string
	Manifest model.RunManifest
	Exports  []model.ExportResult
	Pruned   []string
	Stages   []model.StageMetrics // filled on failure too
}

// ------------------- Pipeline Runner -------------------

// Run ingests the input file, derives the dataset and publishes the artifact
// set. On any error nothing is published and the previous run stays current.
func Run(ctx context.Context, opts Options) (res Result, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	start := clock.Now()
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)
	logger.Info("pipeline started", "input", opts.InputPath, "output_dir", opts.OutputDir)

	tracker := NewStageTracker(clock, logger)
	defer func() { res.Stages = tracker.Stages() }()

	// --- INGESTION STAGE ---
	tracker.StartStage(StageIngest)
	obs, err := IngestFile(opts.InputPath)
	if err != nil {
		tracker.FailStage(StageIngest, err)
		return res, fmt.Errorf("ingest: %w", err)
	}
	tracker.EndStage(StageIngest, len(obs))
	logger.Info("ingestion complete",
		"rows", len(obs),
		"first_year", obs[0].Year,
		"last_year", obs[len(obs)-1].Year,
	)

	// --- PROCESSING STAGE ---
	tracker.StartStage(StageProcess)
	ds, err := Process(obs)
	if err != nil {
		tracker.FailStage(StageProcess, err)
		return res, fmt.Errorf("process: %w", err)
	}
	tracker.EndStage(StageProcess, len(ds.Annual))
	logger.Info("statistics computed",
		"decades", len(ds.Decades),
		"trend_per_decade", ds.Trends.TrendPerDecade,
		"warmest_year", ds.Trends.Extremes.WarmestYear.Year,
		"coldest_year", ds.Trends.Extremes.ColdestYear.Year,
	)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	// --- EXPORT STAGE ---
	tracker.StartStage(StageExport)
	om := utils.NewOutputManager(opts.OutputDir)
	if err := om.EnsureOutputDirExists(); err != nil {
		tracker.FailStage(StageExport, err)
		return res, fmt.Errorf("export: %w", err)
	}
	runDir, err := om.CreateRunDir(runID)
	if err != nil {
		tracker.FailStage(StageExport, err)
		return res, fmt.Errorf("export: %w", err)
	}
	defer func() {
		if err != nil {
			if rmErr := om.DiscardRun(runID); rmErr != nil {
				logger.Warn("failed to discard unpublished run", "error", rmErr)
			}
		}
	}()

	manifest := model.RunManifest{
		RunID:       runID,
		InputPath:   opts.InputPath,
		GeneratedAt: clock.Now().UTC(),
		RecordCount: len(ds.Annual),
		DecadeCount: len(ds.Decades),
	}
	exports, err := ExportDataset(ctx, runDir, ds, &manifest, ExportOptions{Parquet: opts.Parquet})
	if err != nil {
		tracker.FailStage(StageExport, err)
		return res, fmt.Errorf("export: %w", err)
	}
	for _, e := range exports {
		logger.Debug("artifact written", "type", e.Type, "path", e.Path, "records", e.RecordCount)
	}
	tracker.EndStage(StageExport, len(exports))

	// --- PUBLISH STAGE ---
	tracker.StartStage(StagePublish)
	if err = om.Publish(runID); err != nil {
		tracker.FailStage(StagePublish, err)
		return res, fmt.Errorf("publish: %w", err)
	}
	tracker.EndStage(StagePublish, 1)

	pruned, pruneErr := om.PruneRuns(opts.KeepRuns)
	if pruneErr != nil {
		logger.Warn("failed to prune old runs", "error", pruneErr)
	}

	logger.Info("pipeline completed",
		"run_dir", runDir,
		"artifacts", len(exports),
		"pruned", len(pruned),
		"duration", clock.Since(start),
	)

	return Result{
		RunID:    runID,
		RunDir:   runDir,
		Manifest: manifest,
		Exports:  exports,
		Pruned:   pruned,
	}, nil
}
