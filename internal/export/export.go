// Package export writes an enriched dataset to files for external dashboards.
package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/meltforce/hevystats/internal/analytics"
	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/pipeline"
)

// Supported formats.
const (
	FormatParquet = "parquet"
	FormatCSV     = "csv"
	FormatSQLite  = "sqlite"
)

const timeLayout = "2006-01-02T15:04:05"

// columns is the column order shared by every format.
var columns = []string{
	"exercise_title", "set_type", "start_time", "end_time", "session_date",
	"weight_kg", "reps", "distance_km", "duration_seconds", "rpe",
	"muscle_group", "major_group", "weight_type", "gym_dependent",
	"gym", "routine_label", "bodyweight_kg", "volume",
}

// Write renders ds to path in the given format, replacing any existing file.
func Write(path, format string, ds *pipeline.Dataset) error {
	if ds == nil {
		return fmt.Errorf("no dataset to export")
	}
	sets := ds.Sets()
	var err error
	switch format {
	case FormatParquet:
		err = writeParquet(path, sets)
	case FormatCSV:
		err = writeCSV(path, sets)
	case FormatSQLite:
		err = writeSQLite(path, ds, sets)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("writing %s export %s: %w", format, path, err)
	}
	return nil
}

func formatTime(s models.EnrichedSet) (start, end, date string) {
	return s.StartTime.Format(timeLayout), s.EndTime.Format(timeLayout), s.SessionDate().Format("2006-01-02")
}

func majorGroup(s models.EnrichedSet) string {
	return analytics.MajorGroup(s.MuscleGroup)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
