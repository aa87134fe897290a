package export

import (
	"os"

	"github.com/meltforce/hevystats/internal/models"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetRow mirrors columns. Absent numerics are written as NaN.
type parquetRow struct {
	ExerciseTitle   string  `parquet:"name=exercise_title, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SetType         string  `parquet:"name=set_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	StartTime       string  `parquet:"name=start_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	EndTime         string  `parquet:"name=end_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	SessionDate     string  `parquet:"name=session_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	WeightKg        float64 `parquet:"name=weight_kg, type=DOUBLE"`
	Reps            float64 `parquet:"name=reps, type=DOUBLE"`
	DistanceKm      float64 `parquet:"name=distance_km, type=DOUBLE"`
	DurationSeconds float64 `parquet:"name=duration_seconds, type=DOUBLE"`
	RPE             float64 `parquet:"name=rpe, type=DOUBLE"`
	MuscleGroup     string  `parquet:"name=muscle_group, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	MajorGroup      string  `parquet:"name=major_group, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	WeightType      string  `parquet:"name=weight_type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	GymDependent    bool    `parquet:"name=gym_dependent, type=BOOLEAN"`
	Gym             string  `parquet:"name=gym, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	RoutineLabel    string  `parquet:"name=routine_label, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	BodyweightKg    float64 `parquet:"name=bodyweight_kg, type=DOUBLE"`
	Volume          float64 `parquet:"name=volume, type=DOUBLE"`
}

func writeParquet(path string, sets []models.EnrichedSet) error {
	data, err := marshalParquet(sets)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func marshalParquet(sets []models.EnrichedSet) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(parquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range sets {
		start, end, date := formatTime(s)
		row := parquetRow{
			ExerciseTitle:   s.ExerciseTitle,
			SetType:         s.SetType,
			StartTime:       start,
			EndTime:         end,
			SessionDate:     date,
			WeightKg:        valueOrNaN(s.WeightKg),
			Reps:            valueOrNaN(s.Reps),
			DistanceKm:      valueOrNaN(s.DistanceKm),
			DurationSeconds: valueOrNaN(s.DurationSeconds),
			RPE:             valueOrNaN(s.RPE),
			MuscleGroup:     s.MuscleGroup,
			MajorGroup:      majorGroup(s),
			WeightType:      s.WeightType.String(),
			GymDependent:    s.GymDependent,
			Gym:             s.Gym,
			RoutineLabel:    s.RoutineLabel,
			BodyweightKg:    s.BodyweightKg,
			Volume:          s.Volume,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
