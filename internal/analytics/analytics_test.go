package analytics

import (
	"testing"
	"time"

	"github.com/meltforce/hevystats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func es(title, muscle string, start time.Time, minutes int, weight, reps, volume float64) models.EnrichedSet {
	return models.EnrichedSet{
		RawSet: models.RawSet{
			ExerciseTitle: title,
			StartTime:     start,
			EndTime:       start.Add(time.Duration(minutes) * time.Minute),
			WeightKg:      fp(weight),
			Reps:          fp(reps),
		},
		MuscleGroup: muscle,
		Volume:      volume,
	}
}

func ts(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

// weekDate returns the Wednesday of an ISO week.
func weekDate(year, week int) time.Time {
	return ISOWeek{Year: year, Week: week}.Monday().AddDate(0, 0, 2)
}

func TestStreakFromWeeks(t *testing.T) {
	w := func(week int) ISOWeek { return ISOWeek{Year: 2024, Week: week} }
	tests := []struct {
		name    string
		weeks   []ISOWeek
		current ISOWeek
		want    int
	}{
		{"run broken by gap", []ISOWeek{w(10), w(9), w(8), w(5)}, w(10), 3},
		{"current week not trained yet", []ISOWeek{w(10), w(9), w(8), w(5)}, w(11), 3},
		{"lapsed", []ISOWeek{w(10), w(9)}, w(13), 0},
		{"duplicates and order ignored", []ISOWeek{w(8), w(9), w(9), w(10), w(8)}, w(10), 3},
		{"single week", []ISOWeek{w(10)}, w(10), 1},
		{"empty", nil, w(10), 0},
		{
			"across year boundary",
			[]ISOWeek{{Year: 2021, Week: 1}, {Year: 2020, Week: 53}, {Year: 2020, Week: 52}},
			ISOWeek{Year: 2021, Week: 1},
			3,
		},
		{
			"year boundary without week 53",
			[]ISOWeek{{Year: 2024, Week: 1}, {Year: 2023, Week: 52}},
			ISOWeek{Year: 2024, Week: 2},
			2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakFromWeeks(tt.weeks, tt.current))
		})
	}
}

func TestWeeklyStreak(t *testing.T) {
	sets := []models.EnrichedSet{
		es("Squat", "quads", weekDate(2024, 10), 60, 100, 5, 500),
		es("Squat", "quads", weekDate(2024, 9), 60, 100, 5, 500),
		es("Squat", "quads", weekDate(2024, 8), 60, 100, 5, 500),
		es("Squat", "quads", weekDate(2024, 5), 60, 100, 5, 500),
	}
	assert.Equal(t, 3, WeeklyStreak(sets, weekDate(2024, 10)))
	assert.Equal(t, 0, WeeklyStreak(sets, weekDate(2024, 13)))
}

func TestISOWeekMonday(t *testing.T) {
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ISOWeek{2024, 1}.Monday())
	assert.Equal(t, time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC), ISOWeek{2020, 53}.Monday())
	assert.Equal(t, ISOWeek{2020, 53}, WeekOf(time.Date(2021, 1, 3, 12, 0, 0, 0, time.UTC)))
}

func TestFilterApply(t *testing.T) {
	a := es("Squat", "quads", ts(2023, 5, 1, 18), 60, 100, 5, 500)
	a.RoutineLabel = "PPL"
	b := es("Squat", "quads", ts(2024, 5, 1, 18), 60, 100, 5, 500)
	b.RoutineLabel = "PPL"
	c := es("Squat", "quads", ts(2024, 6, 1, 18), 60, 100, 5, 500)
	c.RoutineLabel = "UL"
	sets := []models.EnrichedSet{a, b, c}

	assert.Len(t, Filter{}.Apply(sets), 3)
	assert.Equal(t, []models.EnrichedSet{b, c}, Filter{Year: 2024}.Apply(sets))
	assert.Equal(t, []models.EnrichedSet{b}, Filter{Year: 2024, Routine: "PPL"}.Apply(sets))
	assert.Equal(t, []int{2024, 2023}, Years(sets))
}

// TestSummarize verifies workouts count days and hours count each session once.
func TestSummarize(t *testing.T) {
	sets := []models.EnrichedSet{
		es("Squat", "quads", ts(2024, 1, 1, 9), 90, 100, 5, 500),
		es("Squat", "quads", ts(2024, 1, 1, 9), 90, 100, 5, 500),
		es("Curl", "biceps", ts(2024, 1, 1, 18), 30, 10, 12, 120),
		es("Bench", "chest", ts(2024, 1, 3, 18), 60, 80, 8, 640),
	}
	sum := Summarize(sets)

	assert.Equal(t, 1760.0, sum.TotalVolumeKg)
	assert.InDelta(t, 1.76, sum.TotalVolumeTonnes, 1e-9)
	assert.Equal(t, 2, sum.Workouts)
	assert.InDelta(t, 3.0, sum.Hours, 1e-9)
	assert.Equal(t, 4, sum.Sets)
	assert.Equal(t, 30, sum.Reps)
	assert.Equal(t, 2.0, sum.AvgSetsPerWorkout)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestMajorGroup(t *testing.T) {
	assert.Equal(t, "arms", MajorGroup("triceps"))
	assert.Equal(t, "legs", MajorGroup("glutes"))
	assert.Equal(t, "back", MajorGroup("lats"))
	assert.Equal(t, "chest", MajorGroup("chest"))
	assert.Equal(t, "unknown", MajorGroup("unknown"))
}

func TestMonthlyVolume(t *testing.T) {
	sets := []models.EnrichedSet{
		es("Curl", "biceps", ts(2024, 1, 2, 18), 60, 10, 10, 100),
		es("Pushdown", "triceps", ts(2024, 1, 2, 18), 60, 20, 10, 200),
		es("Squat", "quads", ts(2024, 1, 5, 18), 60, 100, 5, 500),
		es("Curl", "biceps", ts(2024, 2, 1, 18), 60, 12, 10, 120),
	}

	overall := MonthlyVolume(sets, "", false)
	assert.Equal(t, []MonthlyPoint{
		{Month: "2024-01", Group: "arms", Volume: 300},
		{Month: "2024-01", Group: "legs", Volume: 500},
		{Month: "2024-02", Group: "arms", Volume: 120},
	}, overall)

	arms := MonthlyVolume(sets, "arms", false)
	assert.Equal(t, []MonthlyPoint{
		{Month: "2024-01", Group: "biceps", Volume: 100},
		{Month: "2024-01", Group: "triceps", Volume: 200},
		{Month: "2024-02", Group: "biceps", Volume: 120},
	}, arms)

	// January has two sessions in total but only one trained arms.
	perWorkout := MonthlyVolume(sets, "", true)
	assert.Equal(t, 150.0, perWorkout[0].Volume)
	assert.Equal(t, 250.0, perWorkout[1].Volume)
	armsPerWorkout := MonthlyVolume(sets, "arms", true)
	assert.Equal(t, 100.0, armsPerWorkout[0].Volume)
}

func TestMuscleBalance(t *testing.T) {
	sets := []models.EnrichedSet{
		es("Curl", "biceps", ts(2024, 1, 2, 18), 60, 10, 10, 100),
		es("Squat", "quads", ts(2024, 1, 5, 18), 60, 100, 3, 300),
	}
	got := MuscleBalance(sets)
	require.Len(t, got, 2)
	assert.Equal(t, GroupShare{Group: "legs", Volume: 300, Share: 0.75}, got[0])
	assert.Equal(t, GroupShare{Group: "arms", Volume: 100, Share: 0.25}, got[1])
}

func TestProgressionCandidates(t *testing.T) {
	var sets []models.EnrichedSet
	for i := 0; i < 12; i++ {
		start := ts(2024, 1, 1+i, 18)
		sets = append(sets, es("Curl", "biceps", start, 60, 10, 10, 100))
		sets = append(sets, es("Curl", "biceps", start, 60, 10, 10, 100))

		leg := es("Leg Press", "quads", start, 60, 100, 10, 1000)
		leg.GymDependent = true
		leg.Gym = "Home"
		if i%2 == 0 {
			leg.Gym = "City"
		}
		sets = append(sets, leg)
	}
	sets = append(sets, es("Bench", "chest", ts(2024, 2, 1, 18), 60, 80, 8, 640))

	got := ProgressionCandidates(sets, 0)
	assert.Equal(t, []Candidate{{Exercise: "Curl", MuscleGroup: "biceps", Sessions: 12}}, got)

	got = ProgressionCandidates(sets, 6)
	require.Len(t, got, 3)
	assert.Equal(t, Candidate{Exercise: "Leg Press", Gym: "City", MuscleGroup: "quads", Sessions: 6}, got[1])
	assert.Equal(t, Candidate{Exercise: "Leg Press", Gym: "Home", MuscleGroup: "quads", Sessions: 6}, got[2])
}

func TestProgression(t *testing.T) {
	home := func(s models.EnrichedSet) models.EnrichedSet { s.Gym = "Home"; return s }
	sets := []models.EnrichedSet{
		home(es("Squat", "quads", ts(2024, 1, 8, 18), 60, 105, 5, 525)),
		home(es("Squat", "quads", ts(2024, 1, 1, 18), 60, 100, 5, 500)),
		home(es("Squat", "quads", ts(2024, 1, 1, 18), 60, 90, 8, 720)),
		es("Squat", "quads", ts(2024, 1, 3, 18), 60, 60, 10, 600),
		home(es("Curl", "biceps", ts(2024, 1, 1, 18), 60, 10, 10, 100)),
	}

	all := Progression(sets, "Squat", "")
	require.Len(t, all, 3)
	assert.Equal(t, SessionProgress{Start: ts(2024, 1, 1, 18), MaxWeightKg: 100, Volume: 1220, Sets: 2, Reps: 13}, all[0])
	assert.Equal(t, ts(2024, 1, 3, 18), all[1].Start)
	assert.Equal(t, 105.0, all[2].MaxWeightKg)

	assert.Len(t, Progression(sets, "Squat", "Home"), 2)
	assert.Empty(t, Progression(sets, "Deadlift", ""))
}

func TestRoutineOrder(t *testing.T) {
	mk := func(label string, start time.Time) models.EnrichedSet {
		s := es("Squat", "quads", start, 60, 100, 5, 500)
		s.RoutineLabel = label
		return s
	}
	sets := []models.EnrichedSet{
		mk("PPL", ts(2024, 1, 10, 18)),
		mk("UL", ts(2024, 3, 1, 18)),
		mk("PPL", ts(2024, 1, 2, 18)),
		mk("Unknown", ts(2023, 6, 1, 18)),
	}
	assert.Equal(t, []string{"UL", "PPL", "Unknown"}, RoutineOrder(sets))
}

func TestNewOverview(t *testing.T) {
	sets := []models.EnrichedSet{
		es("Squat", "quads", ts(2023, 5, 1, 18), 60, 100, 5, 500),
		es("Squat", "quads", ts(2024, 5, 1, 18), 60, 100, 5, 500),
	}
	ov := NewOverview(sets, Filter{Year: 2024})
	assert.Equal(t, []int{2024, 2023}, ov.Years)
	assert.Equal(t, 500.0, ov.Summary.TotalVolumeKg)
	assert.Equal(t, 2024, ov.Filter.Year)
}

func TestStreakAt(t *testing.T) {
	sets := []models.EnrichedSet{
		es("Squat", "quads", weekDate(2024, 10), 60, 100, 5, 500),
		es("Squat", "quads", weekDate(2024, 9), 60, 100, 5, 500),
	}
	st := StreakAt(sets, weekDate(2024, 11))
	assert.Equal(t, Streak{Weeks: 2, CurrentWeek: ISOWeek{Year: 2024, Week: 11}}, st)
}

func TestBodyweightOverlay(t *testing.T) {
	samples := []models.BodyweightSample{
		{Date: ts(2024, 4, 30, 0), WeightKg: 79},
		{Date: ts(2024, 5, 1, 0), WeightKg: 80},
		{Date: ts(2024, 5, 20, 7), WeightKg: 81},
		{Date: ts(2024, 5, 21, 0), WeightKg: 82},
	}
	sets := []models.EnrichedSet{
		es("Squat", "quads", ts(2024, 5, 20, 18), 60, 100, 5, 500),
		es("Squat", "quads", ts(2024, 5, 1, 18), 60, 100, 5, 500),
	}

	tests := []struct {
		name string
		sets []models.EnrichedSet
		want []float64
	}{
		{"span of sets, inclusive by date", sets, []float64{80, 81}},
		{"single session", sets[:1], []float64{81}},
		{"no sets", nil, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BodyweightOverlay(samples, tt.sets)
			require.NotNil(t, got)
			weights := make([]float64, len(got))
			for i, b := range got {
				weights[i] = b.WeightKg
			}
			assert.Equal(t, tt.want, weights)
		})
	}
}
