package analytics

import (
	"sort"
	"time"

	"github.com/meltforce/hevystats/internal/models"
)

// DefaultMinSessions is the session count an exercise needs before it is
// offered for progression analysis.
const DefaultMinSessions = 12

// Candidate is an exercise with enough history for progression analysis.
// Gym is set only for gym-dependent exercises, whose loads are not comparable
// across gyms.
type Candidate struct {
	Exercise    string `json:"exercise"`
	Gym         string `json:"gym,omitempty"`
	MuscleGroup string `json:"muscle_group"`
	Sessions    int    `json:"sessions"`
}

// ProgressionCandidates returns exercises (per gym where gym-dependent) with
// at least minSessions distinct sessions, sorted by muscle group then name.
func ProgressionCandidates(sets []models.EnrichedSet, minSessions int) []Candidate {
	if minSessions <= 0 {
		minSessions = DefaultMinSessions
	}
	type key struct{ exercise, gym string }
	sessions := make(map[key]map[int64]struct{})
	muscle := make(map[key]string)

	for _, s := range sets {
		k := key{exercise: s.ExerciseTitle}
		if s.GymDependent {
			k.gym = s.Gym
		}
		if sessions[k] == nil {
			sessions[k] = make(map[int64]struct{})
			muscle[k] = s.MuscleGroup
		}
		sessions[k][s.StartTime.Unix()] = struct{}{}
	}

	out := make([]Candidate, 0, len(sessions))
	for k, ss := range sessions {
		if len(ss) < minSessions {
			continue
		}
		out = append(out, Candidate{Exercise: k.exercise, Gym: k.gym, MuscleGroup: muscle[k], Sessions: len(ss)})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.MuscleGroup != b.MuscleGroup {
			return a.MuscleGroup < b.MuscleGroup
		}
		if a.Exercise != b.Exercise {
			return a.Exercise < b.Exercise
		}
		return a.Gym < b.Gym
	})
	return out
}

// SessionProgress is one session's performance on an exercise.
type SessionProgress struct {
	Start       time.Time `json:"start_time"`
	MaxWeightKg float64   `json:"max_weight_kg"`
	Volume      float64   `json:"volume_kg"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
}

// Progression returns per-session figures for one exercise in chronological
// order. A non-empty gym restricts the history to that gym.
func Progression(sets []models.EnrichedSet, exercise, gym string) []SessionProgress {
	bySession := make(map[int64]*SessionProgress)
	var order []int64

	for _, s := range sets {
		if s.ExerciseTitle != exercise {
			continue
		}
		if gym != "" && s.Gym != gym {
			continue
		}
		k := s.StartTime.Unix()
		p, ok := bySession[k]
		if !ok {
			p = &SessionProgress{Start: s.StartTime}
			bySession[k] = p
			order = append(order, k)
		}
		if w := s.WeightOrZero(); p.Sets == 0 || w > p.MaxWeightKg {
			p.MaxWeightKg = w
		}
		p.Volume += s.Volume
		p.Sets++
		p.Reps += int(s.RepsOrZero())
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	out := make([]SessionProgress, 0, len(order))
	for _, k := range order {
		out = append(out, *bySession[k])
	}
	return out
}

// RoutineOrder lists routine labels by the start of their first session,
// most recent first.
func RoutineOrder(sets []models.EnrichedSet) []string {
	first := make(map[string]time.Time)
	for _, s := range sets {
		if t, ok := first[s.RoutineLabel]; !ok || s.StartTime.Before(t) {
			first[s.RoutineLabel] = s.StartTime
		}
	}
	labels := make([]string, 0, len(first))
	for l := range first {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		ti, tj := first[labels[i]], first[labels[j]]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return labels[i] < labels[j]
	})
	return labels
}
