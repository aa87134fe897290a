package storage

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/meltforce/hevystats/internal/ingest"
	"github.com/meltforce/hevystats/internal/models"
)

// DefaultSetsTable is the table QueryRawSets reads when none is configured.
const DefaultSetsTable = "hevy_sets"

// QueryRawSets reads every logged set from table ("name" or "schema.name"),
// which must carry the Hevy export columns. Rows are returned in physical
// order (ctid), which for an append-only import matches the export order.
func (db *DB) QueryRawSets(ctx context.Context, table string) ([]models.RawSet, error) {
	rows, err := db.Pool.Query(ctx, rawSetsQuery(table))
	if err != nil {
		return nil, fmt.Errorf("querying raw sets: %w", err)
	}
	defer rows.Close()

	var result []models.RawSet
	for rows.Next() {
		var s models.RawSet
		if err := rows.Scan(&s.ExerciseTitle, &s.SetType, &s.StartTime, &s.EndTime,
			&s.WeightKg, &s.Reps, &s.DistanceKm, &s.DurationSeconds, &s.RPE); err != nil {
			return nil, fmt.Errorf("scanning raw set: %w", err)
		}
		s.StartTime = ingest.Naive(s.StartTime)
		s.EndTime = ingest.Naive(s.EndTime)
		for _, v := range []**float64{&s.WeightKg, &s.Reps, &s.DistanceKm, &s.DurationSeconds, &s.RPE} {
			if *v != nil && (math.IsNaN(**v) || math.IsInf(**v, 0)) {
				*v = nil
			}
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func rawSetsQuery(table string) string {
	if table == "" {
		table = DefaultSetsTable
	}
	return fmt.Sprintf(
		`SELECT exercise_title, COALESCE(set_type, ''), start_time, end_time,
		 weight_kg, reps, distance_km, duration_seconds, rpe
		 FROM %s
		 ORDER BY ctid`,
		pgx.Identifier(strings.Split(table, ".")).Sanitize())
}
