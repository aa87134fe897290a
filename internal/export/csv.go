package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/meltforce/hevystats/internal/models"
)

func writeCSV(path string, sets []models.EnrichedSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, s := range sets {
		start, end, date := formatTime(s)
		row := []string{
			s.ExerciseTitle,
			s.SetType,
			start,
			end,
			date,
			formatFloatPtr(s.WeightKg),
			formatFloatPtr(s.Reps),
			formatFloatPtr(s.DistanceKm),
			formatFloatPtr(s.DurationSeconds),
			formatFloatPtr(s.RPE),
			s.MuscleGroup,
			majorGroup(s),
			s.WeightType.String(),
			strconv.FormatBool(s.GymDependent),
			s.Gym,
			s.RoutineLabel,
			formatFloat(s.BodyweightKg),
			formatFloat(s.Volume),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
