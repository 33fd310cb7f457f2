package api

import (
	"climate-pipeline/internal/api/handler"
	"climate-pipeline/pkg/router"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "climate-pipeline/docs" // registers the swagger document
)

// RegisterRoutes mounts the climate endpoints, the probes, /metrics and the
// swagger UI. gatherer serves /metrics; pass nil for the default registry.
func RegisterRoutes(r *router.Router, h *handler.ClimateHandler, gatherer prometheus.Gatherer) {
	r.GET("/", h.Index)
	r.GET("/api/annual", h.GetAnnual)
	r.GET("/api/trends", h.GetTrends)
	r.GET("/api/decades", h.GetDecades)
	r.GET("/api/range", h.GetRange)

	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	r.Handle("/metrics", metricsHandler(gatherer))
	r.GET("/swagger/*", httpSwagger.WrapHandler)
}

func metricsHandler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
