package catalog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/meltforce/hevystats/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"exercises": {
		"Lat Pulldown (Machine)": {"muscle_group": "lats", "weight_type": "assisted", "gym_dependent": true},
		"Bench Press (Dumbbell)": {"muscle_group": "chest", "weight_type": "double_weight"},
		"Squat (Barbell)": {"muscle_group": "quads", "weight_type": "standard"},
		"Farmer Walk": {"muscle_group": "forearms", "weight_type": "kettlebell"},
		"Plank": {}
	},
	"excluded_exercises": ["Treadmill", "Stretching"]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadJSON verifies a JSON catalog decodes into typed metadata.
func TestLoadJSON(t *testing.T) {
	c, err := Load(writeTemp(t, "exercise_database.json", sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, 5, c.Len())

	meta, ok := c.Lookup("Lat Pulldown (Machine)")
	require.True(t, ok)
	assert.Equal(t, models.ExerciseMeta{MuscleGroup: "lats", WeightType: models.WeightAssisted, GymDependent: true}, meta)

	meta, ok = c.Lookup("Bench Press (Dumbbell)")
	require.True(t, ok)
	assert.Equal(t, models.WeightDouble, meta.WeightType)
	assert.False(t, meta.GymDependent)

	assert.True(t, c.IsExcluded("Treadmill"))
	assert.False(t, c.IsExcluded("Squat (Barbell)"))
	assert.Len(t, c.Excluded(), 2)
}

// TestLoadDefaultsMissingFields verifies empty entries fall back to unknown.
func TestLoadDefaultsMissingFields(t *testing.T) {
	c, err := Load(writeTemp(t, "exercise_database.json", sampleJSON))
	require.NoError(t, err)

	meta, ok := c.Lookup("Plank")
	require.True(t, ok)
	assert.Equal(t, models.DefaultExerciseMeta(), meta)
}

// TestLoadWarnsOnUnknownWeightType verifies unrecognised weight types are kept
// as unknown and reported.
func TestLoadWarnsOnUnknownWeightType(t *testing.T) {
	c, err := Load(writeTemp(t, "exercise_database.json", sampleJSON))
	require.NoError(t, err)

	meta, _ := c.Lookup("Farmer Walk")
	assert.Equal(t, models.WeightUnknown, meta.WeightType)
	require.Len(t, c.Warnings(), 1)
	assert.Contains(t, c.Warnings()[0], "kettlebell")
}

func TestLoadYAML(t *testing.T) {
	content := `
exercises:
  Pull Up:
    muscle_group: lats
    weight_type: bodyweight
  Dip (Weighted):
    muscle_group: triceps
    weight_type: weighted_bodyweight
excluded_exercises:
  - Warm Up
`
	c, err := Load(writeTemp(t, "catalog.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, models.WeightBodyweight, c.Meta("Pull Up").WeightType)
	assert.Equal(t, models.WeightWeightedBodyweight, c.Meta("Dip (Weighted)").WeightType)
	assert.True(t, c.IsExcluded("Warm Up"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = Load(writeTemp(t, "bad.json", `{"exercises": [`))
	require.Error(t, err)
}

// TestNilCatalog verifies a missing catalog behaves as an empty one.
func TestNilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.Lookup("Squat")
	assert.False(t, ok)
	assert.Equal(t, models.DefaultExerciseMeta(), c.Meta("Squat"))
	assert.False(t, c.IsExcluded("Squat"))
	assert.Empty(t, c.Excluded())
	assert.Zero(t, c.Len())
	_, ok = c.Suggest("Squat")
	assert.False(t, ok)
}

func TestSuggest(t *testing.T) {
	c := New(map[string]models.ExerciseMeta{
		"Lat Pulldown (Machine)": {MuscleGroup: "lats"},
		"Squat (Barbell)":        {MuscleGroup: "quads"},
	}, nil)

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"case and punctuation", "lat pulldown machine", "Lat Pulldown (Machine)", true},
		{"typo", "Squat (Barbel)", "Squat (Barbell)", true},
		{"unrelated", "Romanian Deadlift", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Suggest(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("row", "row"))
	assert.Equal(t, 3, levenshtein("", "row"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
}
