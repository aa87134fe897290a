package pipeline

import "github.com/meltforce/hevystats/internal/models"

// Volume computes the training volume of one set. Absent weight or reps count
// as zero. Assisted volume goes negative when the assist exceeds bodyweight.
func Volume(s models.RawSet, wt models.WeightType, bodyweightKg float64) float64 {
	weight := s.WeightOrZero()
	reps := s.RepsOrZero()

	switch wt {
	case models.WeightDouble:
		return weight * 2 * reps
	case models.WeightAssisted:
		return (bodyweightKg - weight) * reps
	case models.WeightBodyweight:
		return bodyweightKg * reps
	case models.WeightWeightedBodyweight:
		return (bodyweightKg + weight) * reps
	case models.WeightStandard, models.WeightUnknown:
		return weight * reps
	default:
		return weight * reps
	}
}
