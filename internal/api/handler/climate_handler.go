package handler

import (
	"climate-pipeline/internal/model"
	"climate-pipeline/internal/store"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
)

// Repository is the read side of the store the handlers depend on
type Repository interface {
	ListAnnual(ctx context.Context) ([]model.AnnualRecord, error)
	AnnualRange(ctx context.Context, start, end int) ([]model.AnnualRecord, error)
	GetTrends(ctx context.Context) (model.TrendSummary, error)
	ListDecades(ctx context.Context) ([]model.DecadeAverage, error)
	CheckReadiness(ctx context.Context) error
}

// StoreErrorCounter counts failed store reads per operation
type StoreErrorCounter interface {
	IncStoreError(operation string)
}

// ClimateHandler serves the read-only climate endpoints
type ClimateHandler struct {
	repo    Repository
	logger  *slog.Logger
	counter StoreErrorCounter
}

// NewClimateHandler wires a handler to its repository. counter may be nil.
func NewClimateHandler(repo Repository, logger *slog.Logger, counter StoreErrorCounter) *ClimateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClimateHandler{
		repo:    repo,
		logger:  logger.With("component", "api"),
		counter: counter,
	}
}

// Endpoint describes one route in the service descriptor
type Endpoint struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// ServiceInfo is the body of GET /
type ServiceInfo struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Endpoints   []Endpoint `json:"endpoints"`
}

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error string `json:"error"`
}

var serviceInfo = ServiceInfo{
	Name:        "Climate Data API",
	Description: "Global temperature anomaly series, decade averages and trend summary",
	Endpoints: []Endpoint{
		{Path: "/api/annual", Description: "Annual temperature anomalies with 5-year moving average"},
		{Path: "/api/trends", Description: "Trend summary: data range, trend per decade, period averages, extremes"},
		{Path: "/api/decades", Description: "Decade average anomalies as parallel arrays"},
		{Path: "/api/range?start=YYYY&end=YYYY", Description: "Annual records within an inclusive year range"},
	},
}

// ------------------- Service -------------------

// Index describes the service
// @Summary Service descriptor
// @Description Name, description and the list of data endpoints
// @Tags service
// @Produce json
// @Success 200 {object} handler.ServiceInfo
// @Router / [get]
func (h *ClimateHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, serviceInfo)
}

// ------------------- Data -------------------

// GetAnnual returns the full annual series
// @Summary Annual anomalies
// @Description All annual records in ascending year order. movingAverage5yr is null for the first and last two years.
// @Tags climate
// @Produce json
// @Success 200 {array} model.AnnualRecord
// @Failure 500 {object} handler.ErrorResponse
// @Router /api/annual [get]
func (h *ClimateHandler) GetAnnual(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListAnnual(r.Context())
	if err != nil {
		h.storeFailure(w, r, "list_annual", err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

// GetTrends returns the trend summary
// @Summary Trend summary
// @Description Data range, trend per decade, warming since pre-industrial, period averages and extremes
// @Tags climate
// @Produce json
// @Success 200 {object} model.TrendSummary
// @Failure 404 {object} handler.ErrorResponse "No trend data loaded"
// @Failure 500 {object} handler.ErrorResponse
// @Router /api/trends [get]
func (h *ClimateHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.repo.GetTrends(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "No trend data found")
		return
	}
	if err != nil {
		h.storeFailure(w, r, "get_trends", err)
		return
	}
	respondWithJSON(w, http.StatusOK, trends)
}

// GetDecades returns the decade averages
// @Summary Decade averages
// @Description Decade labels and their average anomaly as index-aligned arrays, ascending
// @Tags climate
// @Produce json
// @Success 200 {object} model.DecadalSeries
// @Failure 500 {object} handler.ErrorResponse
// @Router /api/decades [get]
func (h *ClimateHandler) GetDecades(w http.ResponseWriter, r *http.Request) {
	decades, err := h.repo.ListDecades(r.Context())
	if err != nil {
		h.storeFailure(w, r, "list_decades", err)
		return
	}
	respondWithJSON(w, http.StatusOK, model.NewDecadalSeries(decades))
}

// GetRange returns annual records within an inclusive year range
// @Summary Annual anomalies in a year range
// @Description Annual records with start <= year <= end. start greater than end yields an empty array.
// @Tags climate
// @Produce json
// @Param start query int true "First year (inclusive)"
// @Param end query int true "Last year (inclusive)"
// @Success 200 {array} model.AnnualRecord
// @Failure 400 {object} handler.ErrorResponse "Missing or non-integer start/end"
// @Failure 500 {object} handler.ErrorResponse
// @Router /api/range [get]
func (h *ClimateHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	start, okStart := yearParam(r, "start")
	end, okEnd := yearParam(r, "end")
	if !okStart || !okEnd {
		respondWithError(w, http.StatusBadRequest, "Both start and end years are required and must be integers")
		return
	}

	records, err := h.repo.AnnualRange(r.Context(), start, end)
	if err != nil {
		h.storeFailure(w, r, "annual_range", err)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

// ------------------- Probes -------------------

// Healthz reports liveness
// @Summary Liveness probe
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *ClimateHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Readyz reports whether the store is reachable
// @Summary Readiness probe
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /readyz [get]
func (h *ClimateHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.CheckReadiness(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", "error", err)
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *ClimateHandler) storeFailure(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if h.counter != nil {
		h.counter.IncStoreError(operation)
	}
	h.logger.Error("store query failed",
		"operation", operation,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	respondWithError(w, http.StatusInternalServerError, "Internal server error")
}

func yearParam(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to encode response"}`)) //nolint:errcheck
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, ErrorResponse{Error: message})
}
