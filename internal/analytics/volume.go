package analytics

import (
	"sort"

	"github.com/meltforce/hevystats/internal/models"
)

// MonthlyPoint is the volume of one group in one month.
type MonthlyPoint struct {
	Month  string  `json:"month"`
	Group  string  `json:"group"`
	Volume float64 `json:"volume_kg"`
}

// MonthlyVolume aggregates volume per month (YYYY-MM). With group empty the
// breakdown is by major group; otherwise only sets of that major group are
// counted, broken down by specific muscle. With perWorkout, each month's
// values are divided by that month's number of sessions.
func MonthlyVolume(sets []models.EnrichedSet, group string, perWorkout bool) []MonthlyPoint {
	type key struct{ month, group string }
	volumes := make(map[key]float64)
	sessions := make(map[string]map[int64]struct{})

	for _, s := range sets {
		month := s.StartTime.Format("2006-01")
		major := MajorGroup(s.MuscleGroup)
		if group != "" && major != group {
			continue
		}
		label := major
		if group != "" {
			label = s.MuscleGroup
		}
		volumes[key{month, label}] += s.Volume

		if sessions[month] == nil {
			sessions[month] = make(map[int64]struct{})
		}
		sessions[month][s.StartTime.Unix()] = struct{}{}
	}

	points := make([]MonthlyPoint, 0, len(volumes))
	for k, v := range volumes {
		if perWorkout {
			v /= float64(len(sessions[k.month]))
		}
		points = append(points, MonthlyPoint{Month: k.month, Group: k.group, Volume: v})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Month != points[j].Month {
			return points[i].Month < points[j].Month
		}
		return points[i].Group < points[j].Group
	})
	return points
}

// GroupShare is one slice of the muscle balance.
type GroupShare struct {
	Group  string  `json:"group"`
	Volume float64 `json:"volume_kg"`
	Share  float64 `json:"share"`
}

// MuscleBalance splits total volume by major group, largest first. Shares are
// fractions of the summed volume and are zero when that sum is not positive.
func MuscleBalance(sets []models.EnrichedSet) []GroupShare {
	byGroup := make(map[string]float64)
	var total float64
	for _, s := range sets {
		byGroup[MajorGroup(s.MuscleGroup)] += s.Volume
		total += s.Volume
	}

	shares := make([]GroupShare, 0, len(byGroup))
	for g, v := range byGroup {
		gs := GroupShare{Group: g, Volume: v}
		if total > 0 {
			gs.Share = v / total
		}
		shares = append(shares, gs)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Volume != shares[j].Volume {
			return shares[i].Volume > shares[j].Volume
		}
		return shares[i].Group < shares[j].Group
	})
	return shares
}
