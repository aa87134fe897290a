// Package dataset holds the enriched dataset served to readers and re-runs the
// pipeline to refresh it.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/meltforce/hevystats/internal/importer"
	"github.com/meltforce/hevystats/internal/metrics"
	"github.com/meltforce/hevystats/internal/pipeline"
	"github.com/robfig/cron"
)

// reloadTimeout bounds a scheduled reload.
const reloadTimeout = 5 * time.Minute

// Loader reads the pipeline inputs for one run.
type Loader interface {
	Load(ctx context.Context) (*pipeline.Inputs, *importer.Stats, error)
}

// Status describes the dataset currently served and the last reload attempt.
type Status struct {
	RunID       string          `json:"run_id,omitempty"`
	GeneratedAt *time.Time      `json:"generated_at,omitempty"`
	Sets        int             `json:"sets"`
	Sources     *importer.Stats `json:"sources,omitempty"`
	LastAttempt *time.Time      `json:"last_attempt,omitempty"`
	LastError   string          `json:"last_error,omitempty"`
}

// Store holds the latest Dataset. Readers never see a partially built dataset:
// reloads build a new one and swap the pointer.
type Store struct {
	loader  Loader
	opts    pipeline.Options
	metrics *metrics.Manager
	log     *slog.Logger

	reloadMu sync.Mutex

	mu          sync.RWMutex
	current     *pipeline.Dataset
	stats       *importer.Stats
	lastAttempt time.Time
	lastErr     error

	cron *cron.Cron
}

// New creates an empty Store. Call Reload to populate it. m may be nil.
func New(loader Loader, opts pipeline.Options, m *metrics.Manager, log *slog.Logger) *Store {
	return &Store{loader: loader, opts: opts, metrics: m, log: log}
}

// Current returns the dataset being served, or nil before the first successful reload.
func (s *Store) Current() *pipeline.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Status reports the served dataset and the outcome of the last reload.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{Sources: s.stats}
	if s.current != nil {
		st.RunID = s.current.RunID.String()
		generated := s.current.GeneratedAt
		st.GeneratedAt = &generated
		st.Sets = s.current.Len()
	}
	if !s.lastAttempt.IsZero() {
		attempt := s.lastAttempt
		st.LastAttempt = &attempt
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// Reload runs load and enrichment and swaps in the result. On failure the
// previous dataset stays in place. Concurrent reloads run one at a time.
func (s *Store) Reload(ctx context.Context) (*pipeline.Dataset, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	started := time.Now()
	in, stats, err := s.loader.Load(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.lastAttempt = started
		s.lastErr = err
		s.mu.Unlock()
		s.observe(metrics.StatusError, started, nil)
		s.log.Error("reload failed, keeping previous dataset", "error", err)
		return nil, fmt.Errorf("reloading dataset: %w", err)
	}

	ds := pipeline.Enrich(*in, s.opts)

	s.mu.Lock()
	s.current = ds
	s.stats = stats
	s.lastAttempt = started
	s.lastErr = nil
	s.mu.Unlock()

	s.observe(metrics.StatusOK, started, ds)
	s.log.Info("dataset reloaded",
		"run_id", ds.RunID,
		"sets", ds.Len(),
		"unknown_exercises", len(ds.UnknownExercises()),
		"warnings", len(ds.Warnings()),
		"duration", time.Since(started))
	for _, w := range ds.Warnings() {
		s.log.Warn("pipeline warning", "run_id", ds.RunID, "warning", w)
	}
	return ds, nil
}

func (s *Store) observe(status string, started time.Time, ds *pipeline.Dataset) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterPipelineRuns.WithLabelValues(status).Inc()
	s.metrics.HistRunDuration.Observe(time.Since(started).Seconds())
	if ds != nil {
		s.metrics.GaugeEnrichedSets.Set(float64(ds.Len()))
		s.metrics.GaugeUnknownExercise.Set(float64(len(ds.UnknownExercises())))
		s.metrics.GaugeLastRun.Set(float64(ds.GeneratedAt.Unix()))
	}
}

// Schedule starts periodic reloads using a cron spec such as "@every 1h".
func (s *Store) Schedule(spec string) error {
	c := cron.New()
	err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		_, _ = s.Reload(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling reload %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.log.Info("scheduled reloads enabled", "schedule", spec)
	return nil
}

// Stop halts scheduled reloads.
func (s *Store) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
