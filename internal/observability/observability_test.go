package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, "info", "json")

	logger.Debug("hidden")
	logger.Info("pipeline completed", "records", 145)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pipeline completed", entry["msg"])
	assert.Equal(t, float64(145), entry["records"])
}

func TestNewLoggerTo_Text(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerTo(&buf, "debug", "text").Debug("stage done", "stage", "export")

	assert.Contains(t, buf.String(), "stage=export")
	assert.Contains(t, buf.String(), "source=", "debug level adds the call site")
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := true
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRequest("/api/annual", 200, 3*time.Millisecond)
	m.ObserveRequest("/api/annual", 200, 5*time.Millisecond)
	m.ObserveRequest("/api/range", 400, time.Millisecond)
	m.IncStoreError("list_annual")

	assert.Equal(t, 2.0, counterValue(t, reg, "climate_api_requests_total",
		map[string]string{"route": "/api/annual", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "climate_api_requests_total",
		map[string]string{"route": "/api/range", "status": "400"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "climate_api_store_errors_total",
		map[string]string{"operation": "list_annual"}))
}
