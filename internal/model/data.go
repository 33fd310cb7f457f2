package model

import "time"

// RunManifest describes one published artifact set
type RunManifest struct {
	RunID       string    `json:"runId"`
	InputPath   string    `json:"inputPath"`
	GeneratedAt time.Time `json:"generatedAt"`
	RecordCount int       `json:"recordCount"`
	DecadeCount int       `json:"decadeCount"`
	Files       []string  `json:"files"` // artifact file names inside the run directory
}

// ExportResult represents the result of writing one artifact
type ExportResult struct {
	Type        string `json:"type"` // "csv", "json", "parquet"
	Path        string `json:"path"`
	RecordCount int    `json:"recordCount"`
}
