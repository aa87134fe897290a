package analytics

import (
	"math"

	"github.com/meltforce/hevystats/internal/models"
)

// Summary holds the headline KPIs for a set of enriched sets.
type Summary struct {
	TotalVolumeKg     float64 `json:"total_volume_kg"`
	TotalVolumeTonnes float64 `json:"total_volume_tonnes"`
	Workouts          int     `json:"workouts"`
	Hours             float64 `json:"hours"`
	Sets              int     `json:"sets"`
	Reps              int     `json:"reps"`
	AvgSetsPerWorkout float64 `json:"avg_sets_per_workout"`
}

type sessionSpan struct {
	start, end int64
}

// Summarize computes KPIs. Workouts count distinct training days; hours sum
// the duration of each distinct (start, end) session once.
func Summarize(sets []models.EnrichedSet) Summary {
	var sum Summary
	days := make(map[string]struct{})
	spans := make(map[sessionSpan]struct{})
	var reps, seconds float64

	for _, s := range sets {
		sum.TotalVolumeKg += s.Volume
		reps += s.RepsOrZero()
		days[s.SessionDate().Format("2006-01-02")] = struct{}{}

		span := sessionSpan{s.StartTime.Unix(), s.EndTime.Unix()}
		if _, ok := spans[span]; !ok {
			spans[span] = struct{}{}
			seconds += s.EndTime.Sub(s.StartTime).Seconds()
		}
	}

	sum.Sets = len(sets)
	sum.Reps = int(math.Trunc(reps))
	sum.Workouts = len(days)
	sum.Hours = seconds / 3600
	sum.TotalVolumeTonnes = sum.TotalVolumeKg / 1000
	if sum.Workouts > 0 {
		sum.AvgSetsPerWorkout = float64(sum.Sets) / float64(sum.Workouts)
	}
	return sum
}

// Overview is a Summary together with the filter that produced it and the
// years available for filtering.
type Overview struct {
	Filter  Filter  `json:"filter"`
	Years   []int   `json:"years"`
	Summary Summary `json:"summary"`
}

// NewOverview summarizes the sets matching f. Years are taken from all sets.
func NewOverview(all []models.EnrichedSet, f Filter) Overview {
	return Overview{
		Filter:  f,
		Years:   Years(all),
		Summary: Summarize(f.Apply(all)),
	}
}
