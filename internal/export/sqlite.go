package export

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/pipeline"
	_ "modernc.org/sqlite"
)

const createSetsTable = `CREATE TABLE enriched_sets (
	exercise_title   TEXT NOT NULL,
	set_type         TEXT,
	start_time       TEXT NOT NULL,
	end_time         TEXT NOT NULL,
	session_date     TEXT NOT NULL,
	weight_kg        REAL,
	reps             REAL,
	distance_km      REAL,
	duration_seconds REAL,
	rpe              REAL,
	muscle_group     TEXT NOT NULL,
	major_group      TEXT NOT NULL,
	weight_type      TEXT NOT NULL,
	gym_dependent    INTEGER NOT NULL,
	gym              TEXT NOT NULL,
	routine_label    TEXT NOT NULL,
	bodyweight_kg    REAL NOT NULL,
	volume           REAL NOT NULL
)`

const createRunTable = `CREATE TABLE export_run (
	run_id       TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	sets         INTEGER NOT NULL
)`

// writeSQLite recreates the database file at path on every run.
func writeSQLite(path string, ds *pipeline.Dataset, sets []models.EnrichedSet) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing previous export: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening sqlite db: %w", err)
	}
	defer db.Close()

	for _, stmt := range []string{createSetsTable, createRunTable} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert, err := tx.Prepare(`INSERT INTO enriched_sets VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	for _, s := range sets {
		start, end, date := formatTime(s)
		if _, err := insert.Exec(
			s.ExerciseTitle, s.SetType, start, end, date,
			nullFloat(s.WeightKg), nullFloat(s.Reps), nullFloat(s.DistanceKm),
			nullFloat(s.DurationSeconds), nullFloat(s.RPE),
			s.MuscleGroup, majorGroup(s), s.WeightType.String(), s.GymDependent,
			s.Gym, s.RoutineLabel, s.BodyweightKg, s.Volume,
		); err != nil {
			return fmt.Errorf("inserting set: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO export_run (run_id, generated_at, sets) VALUES (?, ?, ?)`,
		ds.RunID.String(), ds.GeneratedAt.UTC().Format(time.RFC3339), len(sets)); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return tx.Commit()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
