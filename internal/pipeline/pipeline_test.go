package pipeline

import (
	"bytes"
	"climate-pipeline/internal/model"
	"climate-pipeline/internal/observability"
	"climate-pipeline/pkg/utils"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name string, obs []Observation) string {
	t.Helper()
	var sb strings.Builder
	for _, o := range obs {
		fmt.Fprintf(&sb, "%d  %.4f  0.0100  0.0001  0.0099  0.0002\n", o.Year, o.Anomaly)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func testOptions(t *testing.T, input, output string) Options {
	t.Helper()
	var logs bytes.Buffer
	return Options{
		InputPath: input,
		OutputDir: output,
		KeepRuns:  5,
		Logger:    observability.NewLoggerTo(&logs, "debug", "text"),
		Clock:     clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func TestRun_PublishesArtifactSet(t *testing.T) {
	tmp := t.TempDir()
	input := writeInput(t, tmp, "temps.asc", decadeFixture())
	output := filepath.Join(tmp, "out")

	res, err := Run(context.Background(), testOptions(t, input, output))
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 10, res.Manifest.RecordCount)
	assert.Equal(t, 2, res.Manifest.DecadeCount)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), res.Manifest.GeneratedAt)
	assert.Len(t, res.Exports, 3)

	current, err := utils.NewOutputManager(output).CurrentRunDir()
	require.NoError(t, err)
	assert.Equal(t, res.RunDir, current)

	ds, manifest, err := ReadArtifacts(filepath.Join(output, "current"))
	require.NoError(t, err)
	assert.Equal(t, res.RunID, manifest.RunID)
	assert.Equal(t, input, manifest.InputPath)
	assert.Equal(t, 1.0, ds.Trends.TrendPerDecade)
}

func TestRun_WithParquet(t *testing.T) {
	tmp := t.TempDir()
	input := writeInput(t, tmp, "temps.asc", decadeFixture())
	opts := testOptions(t, input, filepath.Join(tmp, "out"))
	opts.Parquet = true

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, res.Exports, 4)
	assert.FileExists(t, filepath.Join(res.RunDir, AnnualParquetFile))
}

func TestRun_BadInputKeepsPreviousRun(t *testing.T) {
	tmp := t.TempDir()
	output := filepath.Join(tmp, "out")
	good := writeInput(t, tmp, "good.asc", decadeFixture())

	first, err := Run(context.Background(), testOptions(t, good, output))
	require.NoError(t, err)

	bad := filepath.Join(tmp, "bad.asc")
	require.NoError(t, os.WriteFile(bad, []byte("1995 0.1\n1996 oops\n"), 0o644))

	_, err = Run(context.Background(), testOptions(t, bad, output))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)

	om := utils.NewOutputManager(output)
	currentID, err := om.CurrentRunID()
	require.NoError(t, err)
	assert.Equal(t, first.RunID, currentID)

	entries, err := os.ReadDir(filepath.Join(output, "runs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "failed run leaves no run directory")
}

func TestRun_MissingInput(t *testing.T) {
	tmp := t.TempDir()
	output := filepath.Join(tmp, "out")

	_, err := Run(context.Background(), testOptions(t, filepath.Join(tmp, "missing.asc"), output))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoDirExists(t, output, "nothing is written before the input parses")
}

func TestRun_CancelledBeforeExport(t *testing.T) {
	tmp := t.TempDir()
	input := writeInput(t, tmp, "temps.asc", decadeFixture())
	output := filepath.Join(tmp, "out")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testOptions(t, input, output))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(output, "current"))
}

func TestRun_PrunesOldRuns(t *testing.T) {
	tmp := t.TempDir()
	input := writeInput(t, tmp, "temps.asc", decadeFixture())
	output := filepath.Join(tmp, "out")

	var last Result
	for i := 0; i < 3; i++ {
		opts := testOptions(t, input, output)
		opts.KeepRuns = 1
		res, err := Run(context.Background(), opts)
		require.NoError(t, err)
		last = res
	}

	entries, err := os.ReadDir(filepath.Join(output, "runs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, last.RunID, entries[0].Name())
}

func TestRun_RecordsStages(t *testing.T) {
	tmp := t.TempDir()
	input := writeInput(t, tmp, "temps.asc", decadeFixture())

	res, err := Run(context.Background(), testOptions(t, input, filepath.Join(tmp, "out")))
	require.NoError(t, err)

	require.Len(t, res.Stages, 4)
	names := make([]string, len(res.Stages))
	for i, s := range res.Stages {
		names[i] = s.Name
		assert.Equal(t, model.StageCompleted, s.Status, s.Name)
		assert.NotNil(t, s.EndTime, s.Name)
	}
	assert.Equal(t, []string{StageIngest, StageProcess, StageExport, StagePublish}, names)
	assert.Equal(t, 10, res.Stages[0].RecordsProcessed)
	assert.Equal(t, 3, res.Stages[2].RecordsProcessed)
}

func TestRun_FailedStageIsRecorded(t *testing.T) {
	tmp := t.TempDir()

	res, err := Run(context.Background(), testOptions(t, filepath.Join(tmp, "missing.asc"), filepath.Join(tmp, "out")))
	require.Error(t, err)

	require.Len(t, res.Stages, 1)
	assert.Equal(t, StageIngest, res.Stages[0].Name)
	assert.Equal(t, model.StageFailed, res.Stages[0].Status)
	assert.NotEmpty(t, res.Stages[0].Error)
}

func TestRun_NonFiniteAnomalyFailsAtIngest(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "nan.asc")
	require.NoError(t, os.WriteFile(input, []byte("1900 0.1\n1901 NaN\n1902 0.3\n"), 0o644))

	res, err := Run(context.Background(), testOptions(t, input, filepath.Join(tmp, "out")))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)

	require.Len(t, res.Stages, 1)
	assert.Equal(t, model.StageFailed, res.Stages[0].Status)
}
