package mcp

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/meltforce/hevystats/internal/analytics"
	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/pipeline"
)

// ErrNotLoaded is returned while no dataset has been built yet.
var ErrNotLoaded = errors.New("dataset not loaded")

// DataSource abstracts where the enriched dataset lives. LocalSource reads
// it in-process; HTTPClient reads it from a running server's REST API.
type DataSource interface {
	Sets(ctx context.Context, f analytics.Filter, exercise string) ([]models.EnrichedSet, error)
	Overview(ctx context.Context, f analytics.Filter) (*analytics.Overview, error)
	Streak(ctx context.Context, f analytics.Filter) (*analytics.Streak, error)
	MonthlyVolume(ctx context.Context, f analytics.Filter, group string, perWorkout bool) ([]analytics.MonthlyPoint, error)
	Candidates(ctx context.Context, f analytics.Filter, minSessions int) ([]analytics.Candidate, error)
	Progression(ctx context.Context, f analytics.Filter, exercise, gym string) ([]analytics.SessionProgress, error)
	Bodyweight(ctx context.Context, f analytics.Filter) ([]models.BodyweightSample, error)
	Quality(ctx context.Context) (*pipeline.Quality, error)
}

// Current yields the dataset to answer from. *dataset.Store satisfies it.
type Current interface {
	Current() *pipeline.Dataset
}

// LocalSource computes tool results from an in-process dataset.
type LocalSource struct {
	src Current
	now func() time.Time
}

// Compile-time checks: both sources satisfy DataSource.
var (
	_ DataSource = (*LocalSource)(nil)
	_ DataSource = (*HTTPClient)(nil)
)

// NewLocalSource creates a LocalSource. now defaults to time.Now.
func NewLocalSource(src Current, now func() time.Time) *LocalSource {
	if now == nil {
		now = time.Now
	}
	return &LocalSource{src: src, now: now}
}

func (l *LocalSource) sets(f analytics.Filter) ([]models.EnrichedSet, error) {
	ds := l.src.Current()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return f.Apply(ds.Sets()), nil
}

func (l *LocalSource) Sets(_ context.Context, f analytics.Filter, exercise string) ([]models.EnrichedSet, error) {
	sets, err := l.sets(f)
	if err != nil {
		return nil, err
	}
	if exercise != "" {
		sets = slices.DeleteFunc(sets, func(s models.EnrichedSet) bool {
			return s.ExerciseTitle != exercise
		})
	}
	return sets, nil
}

func (l *LocalSource) Overview(_ context.Context, f analytics.Filter) (*analytics.Overview, error) {
	ds := l.src.Current()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	ov := analytics.NewOverview(ds.Sets(), f)
	return &ov, nil
}

// Streak ignores f.Year: the streak always spans the whole log.
func (l *LocalSource) Streak(_ context.Context, f analytics.Filter) (*analytics.Streak, error) {
	sets, err := l.sets(analytics.Filter{Routine: f.Routine})
	if err != nil {
		return nil, err
	}
	st := analytics.StreakAt(sets, l.now())
	return &st, nil
}

func (l *LocalSource) MonthlyVolume(_ context.Context, f analytics.Filter, group string, perWorkout bool) ([]analytics.MonthlyPoint, error) {
	sets, err := l.sets(f)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyVolume(sets, group, perWorkout), nil
}

func (l *LocalSource) Candidates(_ context.Context, f analytics.Filter, minSessions int) ([]analytics.Candidate, error) {
	sets, err := l.sets(f)
	if err != nil {
		return nil, err
	}
	return analytics.ProgressionCandidates(sets, minSessions), nil
}

func (l *LocalSource) Progression(_ context.Context, f analytics.Filter, exercise, gym string) ([]analytics.SessionProgress, error) {
	sets, err := l.sets(f)
	if err != nil {
		return nil, err
	}
	return analytics.Progression(sets, exercise, gym), nil
}

func (l *LocalSource) Bodyweight(_ context.Context, f analytics.Filter) ([]models.BodyweightSample, error) {
	ds := l.src.Current()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return analytics.BodyweightOverlay(ds.Bodyweight(), f.Apply(ds.Sets())), nil
}

func (l *LocalSource) Quality(context.Context) (*pipeline.Quality, error) {
	ds := l.src.Current()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	q := ds.Quality()
	return &q, nil
}
