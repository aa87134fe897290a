package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/hevystats/internal/analytics"
	"github.com/meltforce/hevystats/internal/catalog"
	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDataset struct {
	ds *pipeline.Dataset
}

func (s staticDataset) Current() *pipeline.Dataset { return s.ds }

var testNow = time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)

func set(title string, start time.Time, weight, reps float64) models.RawSet {
	return models.RawSet{
		ExerciseTitle: title,
		SetType:       "normal",
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		WeightKg:      &weight,
		Reps:          &reps,
	}
}

// testDataset holds five sets: four in ISO week 2024-W19 and one in 2023.
// "Cable Fly" is not in the catalog.
func testDataset() *pipeline.Dataset {
	cat := catalog.New(map[string]models.ExerciseMeta{
		"Squat (Barbell)":    {MuscleGroup: "quads", WeightType: models.WeightStandard},
		"Bench Press":        {MuscleGroup: "chest", WeightType: models.WeightStandard},
		"Pull Up (Assisted)": {MuscleGroup: "lats", WeightType: models.WeightAssisted},
	}, nil)
	return pipeline.Enrich(pipeline.Inputs{
		Sets: []models.RawSet{
			set("Bench Press", time.Date(2023, 3, 1, 18, 0, 0, 0, time.UTC), 80, 5),
			set("Squat (Barbell)", time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC), 100, 5),
			set("Squat (Barbell)", time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC), 110, 3),
			set("Pull Up (Assisted)", time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC), 20, 10),
			set("Cable Fly", time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC), 15, 12),
		},
		Catalog: cat,
	}, pipeline.Options{})
}

func newHandlers(ds *pipeline.Dataset) *handlers {
	return &handlers{
		ds:  NewLocalSource(staticDataset{ds}, func() time.Time { return testNow }),
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	return v
}

func TestGetEnrichedSets(t *testing.T) {
	h := newHandlers(testDataset())
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
		want int
	}{
		{"all", nil, 5},
		{"year", map[string]any{"year": float64(2024)}, 4},
		{"exercise", map[string]any{"exercise": "Squat (Barbell)"}, 2},
		{"limit keeps the tail", map[string]any{"limit": float64(2)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.getEnrichedSets(ctx, callRequest(tt.args))
			require.NoError(t, err)
			assert.Len(t, decodeResult[[]models.EnrichedSet](t, res), tt.want)
		})
	}

	res, err := h.getEnrichedSets(ctx, callRequest(map[string]any{"limit": float64(1)}))
	require.NoError(t, err)
	sets := decodeResult[[]models.EnrichedSet](t, res)
	require.Len(t, sets, 1)
	assert.Equal(t, "Cable Fly", sets[0].ExerciseTitle)
	assert.Equal(t, models.UnknownMuscleGroup, sets[0].MuscleGroup)

	res, err = h.getEnrichedSets(ctx, callRequest(map[string]any{"limit": float64(0)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetTrainingSummary(t *testing.T) {
	h := newHandlers(testDataset())
	res, err := h.getTrainingSummary(context.Background(), callRequest(map[string]any{"year": float64(2024)}))
	require.NoError(t, err)

	ov := decodeResult[analytics.Overview](t, res)
	assert.Equal(t, []int{2024, 2023}, ov.Years)
	// squat 500+330, assisted pull up (70-20)*10, uncatalogued cable fly 15*12
	assert.Equal(t, 1510.0, ov.Summary.TotalVolumeKg)
	assert.Equal(t, 4, ov.Summary.Sets)
}

func TestGetWeeklyStreak(t *testing.T) {
	h := newHandlers(testDataset())
	res, err := h.getWeeklyStreak(context.Background(), callRequest(nil))
	require.NoError(t, err)

	st := decodeResult[analytics.Streak](t, res)
	assert.Equal(t, 1, st.Weeks)
	assert.Equal(t, analytics.ISOWeek{Year: 2024, Week: 20}, st.CurrentWeek)
}

func TestGetMonthlyVolume(t *testing.T) {
	h := newHandlers(testDataset())
	ctx := context.Background()

	res, err := h.getMonthlyVolume(ctx, callRequest(map[string]any{"year": float64(2024), "group": "legs"}))
	require.NoError(t, err)
	points := decodeResult[[]analytics.MonthlyPoint](t, res)
	require.Len(t, points, 1)
	assert.Equal(t, analytics.MonthlyPoint{Month: "2024-05", Group: "quads", Volume: 830}, points[0])

	res, err = h.getMonthlyVolume(ctx, callRequest(map[string]any{"group": "wings"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "unknown group")
}

// TestLocalSourceStreakIgnoresYear verifies a year filter cannot cut a streak
// that runs across new year.
func TestLocalSourceStreakIgnoresYear(t *testing.T) {
	ds := pipeline.Enrich(pipeline.Inputs{
		Sets: []models.RawSet{
			set("Squat (Barbell)", time.Date(2023, 12, 19, 18, 0, 0, 0, time.UTC), 100, 5),
			set("Squat (Barbell)", time.Date(2023, 12, 27, 18, 0, 0, 0, time.UTC), 100, 5),
			set("Squat (Barbell)", time.Date(2024, 1, 3, 18, 0, 0, 0, time.UTC), 100, 5),
		},
	}, pipeline.Options{})
	src := NewLocalSource(staticDataset{ds}, func() time.Time { return time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC) })

	for _, year := range []int{0, 2023, 2024} {
		st, err := src.Streak(context.Background(), analytics.Filter{Year: year})
		require.NoError(t, err)
		assert.Equal(t, 3, st.Weeks, "year %d", year)
	}
}

func TestGetBodyweight(t *testing.T) {
	ds := pipeline.Enrich(pipeline.Inputs{
		Sets: []models.RawSet{
			set("Bench Press", time.Date(2023, 3, 1, 18, 0, 0, 0, time.UTC), 80, 5),
			set("Bench Press", time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC), 80, 5),
		},
		Bodyweight: []models.BodyweightSample{
			{Date: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), WeightKg: 78},
			{Date: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), WeightKg: 79},
			{Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), WeightKg: 81},
		},
	}, pipeline.Options{})
	h := newHandlers(ds)

	res, err := h.getBodyweight(context.Background(), callRequest(nil))
	require.NoError(t, err)
	samples := decodeResult[[]models.BodyweightSample](t, res)
	require.Len(t, samples, 2)
	assert.Equal(t, 79.0, samples[0].WeightKg)
	assert.Equal(t, 81.0, samples[1].WeightKg)

	res, err = h.getBodyweight(context.Background(), callRequest(map[string]any{"year": float64(2023)}))
	require.NoError(t, err)
	assert.Empty(t, decodeResult[[]models.BodyweightSample](t, res))
}

type progressionBody struct {
	Exercise string                      `json:"exercise"`
	Sessions []analytics.SessionProgress `json:"sessions"`
}

func TestGetExerciseProgression(t *testing.T) {
	h := newHandlers(testDataset())
	ctx := context.Background()

	res, err := h.getExerciseProgression(ctx, callRequest(map[string]any{"min_sessions": float64(1)}))
	require.NoError(t, err)
	candidates := decodeResult[map[string][]analytics.Candidate](t, res)["candidates"]
	assert.Len(t, candidates, 4)

	res, err = h.getExerciseProgression(ctx, callRequest(map[string]any{"exercise": "Squat (Barbell)"}))
	require.NoError(t, err)
	body := decodeResult[progressionBody](t, res)
	assert.Equal(t, "Squat (Barbell)", body.Exercise)
	require.Len(t, body.Sessions, 1)
	assert.Equal(t, 110.0, body.Sessions[0].MaxWeightKg)
	assert.Equal(t, 2, body.Sessions[0].Sets)

	res, err = h.getExerciseProgression(ctx, callRequest(map[string]any{"min_sessions": float64(-1)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetDataQuality(t *testing.T) {
	h := newHandlers(testDataset())
	res, err := h.getDataQuality(context.Background(), callRequest(nil))
	require.NoError(t, err)

	q := decodeResult[pipeline.Quality](t, res)
	assert.Equal(t, 5, q.InputSets)
	require.Len(t, q.UnknownExercises, 1)
	assert.Equal(t, "Cable Fly", q.UnknownExercises[0].Title)
}

// TestToolsBeforeLoad verifies every tool reports an error result, not a Go
// error, while the dataset is empty.
func TestToolsBeforeLoad(t *testing.T) {
	h := newHandlers(nil)
	ctx := context.Background()

	tools := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"get_enriched_sets":        h.getEnrichedSets,
		"get_training_summary":     h.getTrainingSummary,
		"get_weekly_streak":        h.getWeeklyStreak,
		"get_monthly_volume":       h.getMonthlyVolume,
		"get_exercise_progression": h.getExerciseProgression,
		"get_bodyweight":           h.getBodyweight,
		"get_data_quality":         h.getDataQuality,
	}
	for name, call := range tools {
		t.Run(name, func(t *testing.T) {
			res, err := call(ctx, callRequest(nil))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), ErrNotLoaded.Error())
		})
	}
}

func TestNewRegistersTools(t *testing.T) {
	s := New(NewLocalSource(staticDataset{testDataset()}, nil), "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{
		"get_enriched_sets",
		"get_training_summary",
		"get_weekly_streak",
		"get_monthly_volume",
		"get_exercise_progression",
		"get_bodyweight",
		"get_data_quality",
	} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}
