package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/hevystats/internal/analytics"
	"github.com/meltforce/hevystats/internal/dataset"
	"github.com/meltforce/hevystats/internal/metrics"
	"github.com/meltforce/hevystats/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Store is the dataset source the handlers read from.
type Store interface {
	Current() *pipeline.Dataset
	Status() dataset.Status
	Reload(ctx context.Context) (*pipeline.Dataset, error)
}

// Options configure a Server.
type Options struct {
	// APIKey guards POST /api/v1/reload. Empty disables the endpoint.
	APIKey string
	// MinSessions is the default progression candidate threshold.
	// Defaults to analytics.DefaultMinSessions.
	MinSessions int
	// Gatherer backs GET /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Now is the clock used for the weekly streak. Defaults to time.Now.
	Now func() time.Time
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   Store
	metrics *metrics.Manager
	opts    Options
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured. m may be nil.
func New(store Store, m *metrics.Manager, opts Options, log *slog.Logger) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MinSessions < 1 {
		opts.MinSessions = analytics.DefaultMinSessions
	}
	s := &Server{
		store:   store,
		metrics: m,
		opts:    opts,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.metrics))
	s.router.Use(CORS)

	// Reload endpoint (API key required)
	s.router.With(APIKeyAuth(s.opts.APIKey)).Post("/api/v1/reload", s.handleReload)

	// Read-only dataset endpoints (no auth, tsnet handles access)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/sets", s.handleSets)
		r.Get("/summary", s.handleSummary)
		r.Get("/streak", s.handleStreak)
		r.Get("/bodyweight", s.handleBodyweight)
		r.Get("/volume/monthly", s.handleMonthlyVolume)
		r.Get("/volume/muscles", s.handleMuscleBalance)
		r.Get("/exercises", s.handleExercises)
		r.Get("/exercises/progression", s.handleProgression)
		r.Get("/routines", s.handleRoutines)
		r.Get("/quality", s.handleQuality)
		r.Get("/status", s.handleStatus)
	})

	if s.opts.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
}

// SetMCP mounts an MCP streamable HTTP handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
