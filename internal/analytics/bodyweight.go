package analytics

import (
	"github.com/meltforce/hevystats/internal/models"
)

// BodyweightOverlay returns the samples dated within the span of sets, from
// the first session date to the last. Samples must be sorted by date. The
// result is empty, never nil, when sets is empty or no sample falls inside.
func BodyweightOverlay(samples []models.BodyweightSample, sets []models.EnrichedSet) []models.BodyweightSample {
	out := []models.BodyweightSample{}
	if len(sets) == 0 {
		return out
	}
	first, last := sets[0].StartTime, sets[0].StartTime
	for _, s := range sets[1:] {
		if s.StartTime.Before(first) {
			first = s.StartTime
		}
		if s.StartTime.After(last) {
			last = s.StartTime
		}
	}
	from, to := models.DateOf(first), models.DateOf(last)
	for _, b := range samples {
		if d := models.DateOf(b.Date); d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out
}
