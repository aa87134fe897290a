package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/meltforce/hevystats/internal/catalog"
	"github.com/meltforce/hevystats/internal/config"
	"github.com/meltforce/hevystats/internal/ingest/hevy"
	"github.com/meltforce/hevystats/internal/ingest/series"
	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/pipeline"
)

// Source names, as reported in Stats and LoadError.
const (
	SourceSetLog     = "set_log"
	SourceCatalog    = "catalog"
	SourceBodyweight = "bodyweight"
	SourceGyms       = "gyms"
	SourceRoutines   = "routines"
)

// LoadError reports a source that could not be read or parsed.
type LoadError struct {
	Source string
	Path   string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s from %s: %v", e.Source, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Stats tracks what one load read.
type Stats struct {
	SetsLoaded        int      `json:"sets_loaded"`
	CatalogExercises  int      `json:"catalog_exercises"`
	BodyweightSamples int      `json:"bodyweight_samples"`
	BodyweightSkipped int      `json:"bodyweight_skipped"`
	GymPeriods        int      `json:"gym_periods"`
	RoutinePeriods    int      `json:"routine_periods"`
	MissingSources    []string `json:"missing_sources,omitempty"`
}

// RawSetQuerier reads the set log from a database instead of a CSV file.
type RawSetQuerier interface {
	QueryRawSets(ctx context.Context, table string) ([]models.RawSet, error)
}

// Importer reads every pipeline source described by a DataConfig.
type Importer struct {
	data  config.DataConfig
	db    RawSetQuerier
	table string
	log   *slog.Logger
}

// New creates a new Importer reading files under data.
func New(data config.DataConfig, log *slog.Logger) *Importer {
	return &Importer{data: data, log: log}
}

// UseDatabase makes the importer read the set log from table instead of data.set_log.
func (imp *Importer) UseDatabase(db RawSetQuerier, table string) {
	imp.db = db
	imp.table = table
}

// Load reads all sources. A missing or unreadable set log is fatal and
// returned as a *LoadError; missing optional sources are logged and listed in
// Stats.MissingSources. Optional sources that exist but fail to parse are fatal.
func (imp *Importer) Load(ctx context.Context) (*pipeline.Inputs, *Stats, error) {
	stats := &Stats{}
	in := &pipeline.Inputs{}

	// Phase 1: set log, required
	sets, err := imp.loadSets(ctx)
	if err != nil {
		return nil, stats, err
	}
	in.Sets = sets
	stats.SetsLoaded = len(sets)

	// Phase 2: optional sources
	catalogPath := imp.data.Path(imp.data.Catalog)
	if ok, err := imp.optional(SourceCatalog, catalogPath, stats, func(path string) error {
		c, err := catalog.Load(path)
		if err != nil {
			return err
		}
		in.Catalog = c
		stats.CatalogExercises = c.Len()
		return nil
	}); err != nil {
		return nil, stats, err
	} else if !ok {
		imp.log.Warn("exercise catalog missing, all exercises will be unknown", "path", catalogPath)
	}

	if err := imp.optionalCSV(SourceBodyweight, imp.data.Bodyweight, stats, func(r io.Reader) error {
		samples, skipped, err := series.ParseBodyweight(r)
		if err != nil {
			return err
		}
		in.Bodyweight = samples
		stats.BodyweightSamples = len(samples)
		stats.BodyweightSkipped = skipped
		if skipped > 0 {
			in.Warnings = append(in.Warnings, fmt.Sprintf("bodyweight: skipped %d rows without a weight", skipped))
		}
		return nil
	}); err != nil {
		return nil, stats, err
	}

	if err := imp.optionalCSV(SourceGyms, imp.data.Gyms, stats, func(r io.Reader) error {
		gyms, err := series.ParseGyms(r)
		if err != nil {
			return err
		}
		in.Gyms = gyms
		stats.GymPeriods = len(gyms)
		return nil
	}); err != nil {
		return nil, stats, err
	}

	if err := imp.optionalCSV(SourceRoutines, imp.data.Routines, stats, func(r io.Reader) error {
		routines, err := series.ParseRoutines(r)
		if err != nil {
			return err
		}
		in.Routines = routines
		stats.RoutinePeriods = len(routines)
		return nil
	}); err != nil {
		return nil, stats, err
	}

	imp.log.Info("sources loaded",
		"sets", stats.SetsLoaded,
		"catalog_exercises", stats.CatalogExercises,
		"bodyweight_samples", stats.BodyweightSamples,
		"gym_periods", stats.GymPeriods,
		"routine_periods", stats.RoutinePeriods,
		"missing", stats.MissingSources)
	return in, stats, nil
}

func (imp *Importer) loadSets(ctx context.Context) ([]models.RawSet, error) {
	if imp.db != nil {
		sets, err := imp.db.QueryRawSets(ctx, imp.table)
		if err != nil {
			return nil, &LoadError{Source: SourceSetLog, Path: "postgres table " + imp.table, Err: err}
		}
		return sets, nil
	}

	path := imp.data.Path(imp.data.SetLog)
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: SourceSetLog, Path: path, Err: err}
	}
	defer f.Close()

	sets, err := hevy.ParseSets(f)
	if err != nil {
		return nil, &LoadError{Source: SourceSetLog, Path: path, Err: err}
	}
	return sets, nil
}

// optional runs load for a source whose file may be absent. It reports
// whether the file was present.
func (imp *Importer) optional(source, path string, stats *Stats, load func(path string) error) (bool, error) {
	if path == "" {
		stats.MissingSources = append(stats.MissingSources, source)
		return false, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		stats.MissingSources = append(stats.MissingSources, source)
		imp.log.Info("optional source not found", "source", source, "path", path)
		return false, nil
	}
	if err := load(path); err != nil {
		return false, &LoadError{Source: source, Path: path, Err: err}
	}
	return true, nil
}

func (imp *Importer) optionalCSV(source, name string, stats *Stats, parse func(io.Reader) error) error {
	_, err := imp.optional(source, imp.data.Path(name), stats, func(path string) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return parse(f)
	})
	return err
}
