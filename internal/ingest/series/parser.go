// Package series parses the dated attribute files: bodyweight samples, gym
// periods and routine periods.
package series

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/meltforce/hevystats/internal/ingest"
	"github.com/meltforce/hevystats/internal/models"
)

// ParseBodyweight reads rows of date,weight_kg. Rows without a usable weight
// are skipped and counted.
func ParseBodyweight(r io.Reader) ([]models.BodyweightSample, int, error) {
	var out []models.BodyweightSample
	skipped := 0
	err := each(r, []string{"date", "weight_kg"}, func(row ingest.Row, date time.Time) error {
		w := row.Float("weight_kg")
		if w == nil {
			skipped++
			return nil
		}
		out = append(out, models.BodyweightSample{Date: date, WeightKg: *w})
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("parsing bodyweight: %w", err)
	}
	return out, skipped, nil
}

// ParseGyms reads rows of date,gym.
func ParseGyms(r io.Reader) ([]models.GymPeriod, error) {
	var out []models.GymPeriod
	err := each(r, []string{"date", "gym"}, func(row ingest.Row, date time.Time) error {
		gym := row.Get("gym")
		if gym == "" {
			return fmt.Errorf("line %d: empty gym", row.Line)
		}
		out = append(out, models.GymPeriod{Date: date, Gym: gym})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing gyms: %w", err)
	}
	return out, nil
}

// ParseRoutines reads rows of date,routine_id[,routine_label].
func ParseRoutines(r io.Reader) ([]models.RoutinePeriod, error) {
	var out []models.RoutinePeriod
	err := each(r, []string{"date", "routine_id"}, func(row ingest.Row, date time.Time) error {
		id := row.Get("routine_id")
		if id == "" {
			return fmt.Errorf("line %d: empty routine_id", row.Line)
		}
		out = append(out, models.RoutinePeriod{Date: date, RoutineID: id, Label: row.Get("routine_label")})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing routines: %w", err)
	}
	return out, nil
}

// each walks the rows of a dated CSV, parsing the date column before handing
// each row to fn.
func each(r io.Reader, required []string, fn func(ingest.Row, time.Time) error) error {
	table, err := ingest.NewTable(r, required...)
	if err != nil {
		return err
	}
	for {
		row, err := table.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		date, err := ingest.ParseDate(row.Get("date"))
		if err != nil {
			return fmt.Errorf("line %d: %w", row.Line, err)
		}
		if err := fn(row, date); err != nil {
			return err
		}
	}
}
