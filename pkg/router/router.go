package router

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Observer receives one call per finished request
type Observer interface {
	ObserveRequest(route string, status int, elapsed time.Duration)
}

// Options configures a Router
type Options struct {
	Logger      *slog.Logger
	CORSOrigins []string
	Observer    Observer // optional
}

// unmatchedRoute labels metrics of requests that hit no registered route,
// keeping the label set bounded
const unmatchedRoute = "unmatched"

// Router is a thin layer over chi that adds request logging, request
// metrics, CORS and JSON 404/405 responses
type Router struct {
	mux      *chi.Mux
	logger   *slog.Logger
	observer Observer
	paths    map[string]bool // track registered paths
}

func New(opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		mux:      chi.NewRouter(),
		logger:   logger,
		observer: opts.Observer,
		paths:    make(map[string]bool),
	}

	r.mux.Use(middleware.RequestID)
	r.mux.Use(middleware.RealIP)
	r.mux.Use(r.logRequests)
	r.mux.Use(middleware.Recoverer)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// --- Register paths ---
func (r *Router) GET(path string, handler http.HandlerFunc) {
	r.mux.Get(path, handler)
	r.paths[path] = true
}

// Handle mounts an http.Handler for all methods, e.g. /metrics
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
	r.paths[pattern] = true
}

// Paths returns the registered route patterns, sorted
func (r *Router) Paths() []string {
	out := make([]string, 0, len(r.paths))
	for p := range r.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ServeHTTP makes the router usable with httptest and http.Server
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Server wraps the router in an http.Server with conservative timeouts
func (r *Router) Server(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// --- Request logging ---
func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		route := unmatchedRoute
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		if r.observer != nil {
			r.observer.ObserveRequest(route, status, duration)
		}

		r.logger.Log(req.Context(), levelFor(status), "http request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", duration,
			"request_id", middleware.GetReqID(req.Context()),
		)
	})
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck // best-effort error body
}
