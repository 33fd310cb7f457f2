package model

import "time"

// Stage status values
const (
	StageRunning   = "running"
	StageCompleted = "completed"
	StageFailed    = "failed"
)

// StageMetrics tracks one stage of a pipeline run
type StageMetrics struct {
	Name             string        `json:"name"`
	StartTime        time.Time     `json:"startTime"`
	EndTime          *time.Time    `json:"endTime,omitempty"`
	Duration         time.Duration `json:"duration,omitempty"`
	RecordsProcessed int           `json:"recordsProcessed"`
	Status           string        `json:"status"` // running, completed, failed
	Error            string        `json:"error,omitempty"`
}
