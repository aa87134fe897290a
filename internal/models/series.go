package models

import "time"

// BodyweightSample is one bodyweight measurement.
type BodyweightSample struct {
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weight_kg"`
}

// GymPeriod marks the gym in use from Date until the next period starts.
type GymPeriod struct {
	Date time.Time `json:"date"`
	Gym  string    `json:"gym"`
}

// RoutinePeriod marks the training routine in use from Date until the next period starts.
type RoutinePeriod struct {
	Date      time.Time `json:"date"`
	RoutineID string    `json:"routine_id"`
	Label     string    `json:"routine_label,omitempty"`
}

// DisplayName returns the routine label, falling back to the routine ID.
func (r RoutinePeriod) DisplayName() string {
	if r.Label != "" {
		return r.Label
	}
	return r.RoutineID
}
