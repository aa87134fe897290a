package analytics

import (
	"sort"

	"github.com/meltforce/hevystats/internal/models"
)

// Filter narrows enriched sets to a calendar year and/or a routine label.
// Zero values match everything.
type Filter struct {
	Year    int    `json:"year,omitempty"`
	Routine string `json:"routine,omitempty"`
}

// Apply returns the matching sets in their original order.
func (f Filter) Apply(sets []models.EnrichedSet) []models.EnrichedSet {
	out := make([]models.EnrichedSet, 0, len(sets))
	for _, s := range sets {
		if f.Year != 0 && s.StartTime.Year() != f.Year {
			continue
		}
		if f.Routine != "" && s.RoutineLabel != f.Routine {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Years lists the calendar years present in sets, most recent first.
func Years(sets []models.EnrichedSet) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, s := range sets {
		y := s.StartTime.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
