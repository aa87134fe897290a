// Package pipeline turns raw set logs into enriched, volume-annotated sets.
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/hevystats/internal/catalog"
	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/temporal"
)

const (
	// DefaultBodyweightKg is used when no bodyweight sample precedes a session.
	DefaultBodyweightKg = 70.0

	// UnknownAttribute is the gym and routine label when no period applies.
	UnknownAttribute = "Unknown"

	warnMissingCatalog = "exercise catalog not available; all exercises classified as unknown"
)

// Inputs is everything one enrichment run reads.
type Inputs struct {
	Sets       []models.RawSet
	Catalog    *catalog.Catalog
	Bodyweight []models.BodyweightSample
	Gyms       []models.GymPeriod
	Routines   []models.RoutinePeriod

	// Warnings raised while loading the inputs.
	Warnings []string
}

// Options tune an enrichment run.
type Options struct {
	DefaultBodyweightKg float64
	Now                 func() time.Time
}

func (o Options) withDefaults() Options {
	if o.DefaultBodyweightKg <= 0 {
		o.DefaultBodyweightKg = DefaultBodyweightKg
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Enrich runs the full batch: filter, catalog lookup, as-of joins for
// bodyweight, gym and routine, then volume.
func Enrich(in Inputs, opts Options) *Dataset {
	opts = opts.withDefaults()

	filtered := Filter(in.Sets, in.Catalog.Excluded())
	bodyweight := bodyweightSeries(in.Bodyweight)
	gyms := gymSeries(in.Gyms)
	routines := routineSeries(in.Routines)

	ds := &Dataset{
		RunID:       uuid.New(),
		GeneratedAt: opts.Now(),
		sets:        make([]models.EnrichedSet, 0, len(filtered)),
		inputSets:   len(in.Sets),
	}
	for _, e := range bodyweight.Entries() {
		ds.bodyweight = append(ds.bodyweight, models.BodyweightSample{Date: e.Date, WeightKg: e.Value})
	}
	ds.warnings = append(ds.warnings, in.Warnings...)
	if in.Catalog == nil {
		ds.warnings = append(ds.warnings, warnMissingCatalog)
	}
	ds.warnings = append(ds.warnings, in.Catalog.Warnings()...)

	bwByDate := make(map[string]float64)
	unknownIdx := make(map[string]int)

	for _, s := range filtered {
		meta, known := in.Catalog.Lookup(s.ExerciseTitle)
		if !known {
			meta = models.DefaultExerciseMeta()
			i, seen := unknownIdx[s.ExerciseTitle]
			if !seen {
				i = len(ds.unknown)
				unknownIdx[s.ExerciseTitle] = i
				u := UnknownExercise{Title: s.ExerciseTitle}
				u.Suggestion, _ = in.Catalog.Suggest(s.ExerciseTitle)
				ds.unknown = append(ds.unknown, u)
			}
			ds.unknown[i].Sets++
		}

		session := s.SessionDate()
		key := session.Format(time.DateOnly)
		bw, ok := bwByDate[key]
		if !ok {
			bw = bodyweight.Resolve(session, opts.DefaultBodyweightKg)
			bwByDate[key] = bw
		}

		ds.sets = append(ds.sets, models.EnrichedSet{
			RawSet:       s,
			MuscleGroup:  meta.MuscleGroup,
			WeightType:   meta.WeightType,
			GymDependent: meta.GymDependent,
			Gym:          gyms.Resolve(s.StartTime, UnknownAttribute),
			RoutineLabel: routineLabel(routines, s.StartTime),
			BodyweightKg: bw,
			Volume:       Volume(s, meta.WeightType, bw),
		})
	}
	return ds
}

// Project strips enrichment back off, yielding the RawSets that produced sets.
func Project(sets []models.EnrichedSet) []models.RawSet {
	out := make([]models.RawSet, len(sets))
	for i, s := range sets {
		out[i] = s.RawSet
	}
	return out
}

func bodyweightSeries(samples []models.BodyweightSample) *temporal.Series[float64] {
	entries := make([]temporal.Entry[float64], len(samples))
	for i, s := range samples {
		entries[i] = temporal.Entry[float64]{Date: s.Date, Value: s.WeightKg}
	}
	return temporal.NewSeries(entries)
}

func gymSeries(periods []models.GymPeriod) *temporal.Series[string] {
	entries := make([]temporal.Entry[string], len(periods))
	for i, p := range periods {
		entries[i] = temporal.Entry[string]{Date: p.Date, Value: p.Gym}
	}
	return temporal.NewSeries(entries)
}

func routineSeries(periods []models.RoutinePeriod) *temporal.Series[models.RoutinePeriod] {
	entries := make([]temporal.Entry[models.RoutinePeriod], len(periods))
	for i, p := range periods {
		entries[i] = temporal.Entry[models.RoutinePeriod]{Date: p.Date, Value: p}
	}
	return temporal.NewSeries(entries)
}

func routineLabel(routines *temporal.Series[models.RoutinePeriod], at time.Time) string {
	w, ok := routines.ResolveWindow(at)
	if !ok {
		return UnknownAttribute
	}
	return w.Label(w.Value.DisplayName())
}
