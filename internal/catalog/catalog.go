// Package catalog holds exercise metadata: muscle group, weight type and gym
// dependence per exercise title, plus the set of excluded exercises.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/meltforce/hevystats/internal/models"
	"gopkg.in/yaml.v3"
)

// document mirrors exercise_database.json.
type document struct {
	Exercises map[string]entry `json:"exercises" yaml:"exercises"`
	Excluded  []string         `json:"excluded_exercises" yaml:"excluded_exercises"`
}

type entry struct {
	MuscleGroup  string `json:"muscle_group" yaml:"muscle_group"`
	WeightType   string `json:"weight_type" yaml:"weight_type"`
	GymDependent bool   `json:"gym_dependent" yaml:"gym_dependent"`
}

// Catalog is an immutable exercise lookup table. A nil *Catalog behaves as an
// empty catalog.
type Catalog struct {
	exercises map[string]models.ExerciseMeta
	excluded  map[string]struct{}
	names     []string
	warnings  []string
}

// New builds a catalog from already-typed metadata.
func New(exercises map[string]models.ExerciseMeta, excluded []string) *Catalog {
	c := &Catalog{
		exercises: make(map[string]models.ExerciseMeta, len(exercises)),
		excluded:  make(map[string]struct{}, len(excluded)),
	}
	for name, meta := range exercises {
		c.exercises[name] = meta
		c.names = append(c.names, name)
	}
	for _, name := range excluded {
		c.excluded[name] = struct{}{}
	}
	sort.Strings(c.names)
	return c
}

// Load reads a catalog file. Files ending in .json are decoded as JSON,
// anything else as YAML.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	isJSON := strings.EqualFold(filepath.Ext(path), ".json")
	c, err := Parse(data, isJSON)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog content. Unrecognised weight types are kept as unknown
// and reported through Warnings.
func Parse(data []byte, isJSON bool) (*Catalog, error) {
	var doc document
	var err error
	if isJSON {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, err
	}

	exercises := make(map[string]models.ExerciseMeta, len(doc.Exercises))
	var warnings []string
	for name, e := range doc.Exercises {
		meta := models.DefaultExerciseMeta()
		if e.MuscleGroup != "" {
			meta.MuscleGroup = e.MuscleGroup
		}
		if e.WeightType != "" {
			wt, ok := models.ParseWeightType(e.WeightType)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("exercise %q has unrecognised weight_type %q", name, e.WeightType))
			}
			meta.WeightType = wt
		}
		meta.GymDependent = e.GymDependent
		exercises[name] = meta
	}
	sort.Strings(warnings)

	c := New(exercises, doc.Excluded)
	c.warnings = warnings
	return c, nil
}

// Lookup returns the metadata for an exercise title.
func (c *Catalog) Lookup(name string) (models.ExerciseMeta, bool) {
	if c == nil {
		return models.ExerciseMeta{}, false
	}
	meta, ok := c.exercises[name]
	return meta, ok
}

// Meta returns the metadata for an exercise, or the unknown default.
func (c *Catalog) Meta(name string) models.ExerciseMeta {
	if meta, ok := c.Lookup(name); ok {
		return meta
	}
	return models.DefaultExerciseMeta()
}

// IsExcluded reports whether sets of this exercise are dropped before enrichment.
func (c *Catalog) IsExcluded(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.excluded[name]
	return ok
}

// Excluded returns a copy of the excluded exercise set.
func (c *Catalog) Excluded() map[string]struct{} {
	out := make(map[string]struct{})
	if c == nil {
		return out
	}
	for name := range c.excluded {
		out[name] = struct{}{}
	}
	return out
}

// Names returns the catalogued exercise titles, sorted.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Len returns the number of catalogued exercises.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.exercises)
}

// Warnings returns problems found while decoding the catalog.
func (c *Catalog) Warnings() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.warnings...)
}
