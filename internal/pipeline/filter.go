package pipeline

import "github.com/meltforce/hevystats/internal/models"

// Filter drops sets of excluded exercises and warm-up sets. Source order is
// preserved and the input slice is left untouched.
func Filter(sets []models.RawSet, excluded map[string]struct{}) []models.RawSet {
	out := make([]models.RawSet, 0, len(sets))
	for _, s := range sets {
		if _, skip := excluded[s.ExerciseTitle]; skip {
			continue
		}
		if s.SetType == models.SetTypeWarmup {
			continue
		}
		out = append(out, s)
	}
	return out
}
