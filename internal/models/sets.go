package models

import "time"

// SetTypeWarmup is the set_type value Hevy uses for warm-up sets.
const SetTypeWarmup = "warmup"

// UnknownMuscleGroup is assigned to exercises missing from the catalog.
const UnknownMuscleGroup = "unknown"

// RawSet is one logged set as parsed from the set log.
// Optional numerics are nil when the source value is absent or unparseable.
type RawSet struct {
	ExerciseTitle   string    `json:"exercise_title"`
	SetType         string    `json:"set_type,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	WeightKg        *float64  `json:"weight_kg,omitempty"`
	Reps            *float64  `json:"reps,omitempty"`
	DistanceKm      *float64  `json:"distance_km,omitempty"`
	DurationSeconds *float64  `json:"duration_seconds,omitempty"`
	RPE             *float64  `json:"rpe,omitempty"`
}

// SessionDate returns the calendar date of the set's session start.
func (s RawSet) SessionDate() time.Time {
	return DateOf(s.StartTime)
}

// WeightOrZero returns weight_kg, or 0 when absent.
func (s RawSet) WeightOrZero() float64 {
	return valueOrZero(s.WeightKg)
}

// RepsOrZero returns reps, or 0 when absent.
func (s RawSet) RepsOrZero() float64 {
	return valueOrZero(s.Reps)
}

// ExerciseMeta is the catalog entry for one exercise.
type ExerciseMeta struct {
	MuscleGroup  string     `json:"muscle_group"`
	WeightType   WeightType `json:"weight_type"`
	GymDependent bool       `json:"gym_dependent"`
}

// DefaultExerciseMeta is used for exercises the catalog does not know.
func DefaultExerciseMeta() ExerciseMeta {
	return ExerciseMeta{MuscleGroup: UnknownMuscleGroup, WeightType: WeightUnknown}
}

// EnrichedSet is a RawSet that survived filtering, with its resolved attributes
// and computed volume.
type EnrichedSet struct {
	RawSet
	MuscleGroup  string     `json:"muscle_group"`
	WeightType   WeightType `json:"weight_type"`
	GymDependent bool       `json:"gym_dependent"`
	Gym          string     `json:"gym"`
	RoutineLabel string     `json:"routine_label"`
	BodyweightKg float64    `json:"bodyweight_kg"`
	Volume       float64    `json:"volume"`
}

// DateOf truncates t to midnight in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
