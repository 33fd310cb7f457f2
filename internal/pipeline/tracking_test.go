package pipeline

import (
	"climate-pipeline/internal/model"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageTracker(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	tracker := NewStageTracker(clock, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tracker.StartStage(StageIngest)
	clock.Advance(2 * time.Second)
	tracker.EndStage(StageIngest, 145)

	tracker.StartStage(StageExport)
	clock.Advance(500 * time.Millisecond)
	tracker.FailStage(StageExport, errors.New("disk full"))

	stages := tracker.Stages()
	require.Len(t, stages, 2)

	assert.Equal(t, model.StageCompleted, stages[0].Status)
	assert.Equal(t, 2*time.Second, stages[0].Duration)
	assert.Equal(t, 145, stages[0].RecordsProcessed)

	assert.Equal(t, model.StageFailed, stages[1].Status)
	assert.Equal(t, 500*time.Millisecond, stages[1].Duration)
	assert.Equal(t, "disk full", stages[1].Error)
}

func TestStageTracker_EndUnknownStageIsNoop(t *testing.T) {
	tracker := NewStageTracker(clockwork.NewFakeClock(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	tracker.EndStage(StagePublish, 1)
	assert.Empty(t, tracker.Stages())
}
