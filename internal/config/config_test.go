package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CLIMATE_CONFIG", "INPUT_PATH", "OUTPUT_DIR", "DB_PATH", "HTTP_ADDR",
	"LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT", "CORS_ORIGINS",
	"EXPORT_PARQUET", "KEEP_RUNS",
}

// clearEnv blanks every variable Load reads; empty values count as unset
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/global_temp_data.asc", cfg.InputPath)
	assert.Equal(t, "data/processed", cfg.OutputDir)
	assert.Equal(t, "climate_data.db", cfg.DBPath)
	assert.False(t, cfg.ExportParquet)
	assert.Equal(t, 5, cfg.KeepRuns)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_PATH", "/data/in.asc")
	t.Setenv("OUTPUT_DIR", "/data/out")
	t.Setenv("DB_PATH", "/data/climate.db")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://example.org")
	t.Setenv("EXPORT_PARQUET", "true")
	t.Setenv("KEEP_RUNS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/in.asc", cfg.InputPath)
	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.Equal(t, "/data/climate.db", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.org"}, cfg.CORSOrigins)
	assert.True(t, cfg.ExportParquet)
	assert.Equal(t, 2, cfg.KeepRuns)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "climate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_path: /srv/gistemp.asc
output_dir: /srv/processed
keep_runs: 3
shutdown_timeout: 45s
cors_origins:
  - https://charts.example.org
`), 0o644))
	t.Setenv("CLIMATE_CONFIG", path)
	t.Setenv("KEEP_RUNS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/gistemp.asc", cfg.InputPath)
	assert.Equal(t, "/srv/processed", cfg.OutputDir)
	assert.Equal(t, 45*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://charts.example.org"}, cfg.CORSOrigins)
	assert.Equal(t, 7, cfg.KeepRuns, "env overrides the file")
	assert.Equal(t, "climate_data.db", cfg.DBPath, "unset keys keep their default")
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLIMATE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLIMATE_CONFIG")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon", "invalid SHUTDOWN_TIMEOUT"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-5s", "invalid SHUTDOWN_TIMEOUT"},
		{"bad parquet flag", "EXPORT_PARQUET", "maybe", "invalid EXPORT_PARQUET"},
		{"bad keep runs", "KEEP_RUNS", "many", "invalid KEEP_RUNS"},
		{"zero keep runs", "KEEP_RUNS", "0", "KEEP_RUNS must be at least 1"},
		{"bad log format", "LOG_FORMAT", "xml", "LOG_FORMAT must be json or text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	cfg := Default()
	cfg.OutputDir = ""
	assert.EqualError(t, cfg.Validate(), "OUTPUT_DIR is required")

	cfg = Default()
	cfg.DBPath = ""
	assert.EqualError(t, cfg.Validate(), "DB_PATH is required")
}
