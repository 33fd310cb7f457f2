package pipeline

import (
	"climate-pipeline/internal/model"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"
)

// Stage names of a pipeline run, in execution order
const (
	StageIngest  = "ingest"
	StageProcess = "process"
	StageExport  = "export"
	StagePublish = "publish"
)

// StageTracker records start, end and record counts of each pipeline stage
type StageTracker struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	logger *slog.Logger
	stages []model.StageMetrics
}

func NewStageTracker(clock clockwork.Clock, logger *slog.Logger) *StageTracker {
	return &StageTracker{clock: clock, logger: logger}
}

// StartStage marks the start of a pipeline stage
func (st *StageTracker) StartStage(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.stages = append(st.stages, model.StageMetrics{
		Name:      name,
		StartTime: st.clock.Now(),
		Status:    model.StageRunning,
	})
	st.logger.Debug("stage started", "stage", name)
}

// EndStage marks the most recent run of name as completed
func (st *StageTracker) EndStage(name string, recordsProcessed int) {
	st.finish(name, recordsProcessed, nil)
}

// FailStage marks the most recent run of name as failed
func (st *StageTracker) FailStage(name string, err error) {
	st.finish(name, 0, err)
}

func (st *StageTracker) finish(name string, records int, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i := len(st.stages) - 1; i >= 0; i-- {
		s := &st.stages[i]
		if s.Name != name || s.Status != model.StageRunning {
			continue
		}
		now := st.clock.Now()
		s.EndTime = &now
		s.Duration = now.Sub(s.StartTime)
		s.RecordsProcessed = records
		if err != nil {
			s.Status = model.StageFailed
			s.Error = err.Error()
			st.logger.Warn("stage failed", "stage", name, "duration", s.Duration, "error", err)
		} else {
			s.Status = model.StageCompleted
			st.logger.Info("stage completed", "stage", name, "records", records, "duration", s.Duration)
		}
		return
	}
}

// Stages returns a copy of the recorded stages
func (st *StageTracker) Stages() []model.StageMetrics {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]model.StageMetrics, len(st.stages))
	copy(out, st.stages)
	return out
}
