// Package hevy parses the Hevy app's workout CSV export.
package hevy

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/meltforce/hevystats/internal/ingest"
	"github.com/meltforce/hevystats/internal/models"
)

// TimeLayout is the timestamp format of start_time and end_time, e.g. "10 Oct 2023, 12:00".
const TimeLayout = "2 Jan 2006, 15:04"

var requiredColumns = []string{"exercise_title", "start_time", "end_time"}

// ParseSets reads a Hevy workout export into raw sets, one per row, in file order.
// A malformed timestamp fails the whole parse; malformed numerics become nil.
func ParseSets(r io.Reader) ([]models.RawSet, error) {
	table, err := ingest.NewTable(r, requiredColumns...)
	if err != nil {
		return nil, fmt.Errorf("reading set log: %w", err)
	}

	var sets []models.RawSet
	for {
		row, err := table.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading set log: %w", err)
		}

		start, err := ParseTime(row.Get("start_time"))
		if err != nil {
			return nil, fmt.Errorf("line %d: start_time: %w", row.Line, err)
		}
		end, err := ParseTime(row.Get("end_time"))
		if err != nil {
			return nil, fmt.Errorf("line %d: end_time: %w", row.Line, err)
		}

		sets = append(sets, models.RawSet{
			ExerciseTitle:   row.Get("exercise_title"),
			SetType:         row.Get("set_type"),
			StartTime:       start,
			EndTime:         end,
			WeightKg:        row.Float("weight_kg"),
			Reps:            row.Float("reps"),
			DistanceKm:      row.Float("distance_km"),
			DurationSeconds: row.Float("duration_seconds"),
			RPE:             row.Float("rpe"),
		})
	}
	return sets, nil
}

// ParseTime parses a Hevy export timestamp as wall-clock time in UTC.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return t, nil
}
