package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/hevystats/internal/models"
)

// UnknownExercise is an exercise title the catalog does not cover.
type UnknownExercise struct {
	Title      string `json:"title"`
	Sets       int    `json:"sets"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Quality summarises one run for data-quality reporting.
type Quality struct {
	RunID            uuid.UUID         `json:"run_id"`
	GeneratedAt      time.Time         `json:"generated_at"`
	InputSets        int               `json:"input_sets"`
	EnrichedSets     int               `json:"enriched_sets"`
	DroppedSets      int               `json:"dropped_sets"`
	UnknownExercises []UnknownExercise `json:"unknown_exercises"`
	Warnings         []string          `json:"warnings"`
}

// Dataset is the immutable result of one enrichment run.
type Dataset struct {
	RunID       uuid.UUID
	GeneratedAt time.Time

	sets      []models.EnrichedSet
	unknown   []UnknownExercise
	warnings  []string
	inputSets int

	bodyweight []models.BodyweightSample
}

// Sets returns a copy of the enriched sets in source order.
func (d *Dataset) Sets() []models.EnrichedSet {
	if d == nil {
		return nil
	}
	return append([]models.EnrichedSet(nil), d.sets...)
}

// Len returns the number of enriched sets.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.sets)
}

// UnknownExercises returns the distinct uncatalogued titles in order of first appearance.
func (d *Dataset) UnknownExercises() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.unknown))
	for i, u := range d.unknown {
		out[i] = u.Title
	}
	return out
}

// Bodyweight returns the bodyweight samples the run resolved against, sorted
// by date with one sample per date.
func (d *Dataset) Bodyweight() []models.BodyweightSample {
	if d == nil {
		return nil
	}
	return append([]models.BodyweightSample(nil), d.bodyweight...)
}

// Warnings returns non-fatal problems raised during the run.
func (d *Dataset) Warnings() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.warnings...)
}

// Quality builds the data-quality report for the run.
func (d *Dataset) Quality() Quality {
	if d == nil {
		return Quality{UnknownExercises: []UnknownExercise{}, Warnings: []string{}}
	}
	q := Quality{
		RunID:            d.RunID,
		GeneratedAt:      d.GeneratedAt,
		InputSets:        d.inputSets,
		EnrichedSets:     len(d.sets),
		DroppedSets:      d.inputSets - len(d.sets),
		UnknownExercises: append([]UnknownExercise{}, d.unknown...),
		Warnings:         append([]string{}, d.warnings...),
	}
	return q
}
