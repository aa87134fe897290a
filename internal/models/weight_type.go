package models

import "strings"

// WeightType classifies how a set's effective load is computed.
type WeightType int

const (
	WeightUnknown WeightType = iota
	WeightStandard
	WeightDouble
	WeightAssisted
	WeightBodyweight
	WeightWeightedBodyweight
)

var weightTypeNames = map[WeightType]string{
	WeightUnknown:            "unknown",
	WeightStandard:           "standard",
	WeightDouble:             "double_weight",
	WeightAssisted:           "assisted",
	WeightBodyweight:         "bodyweight",
	WeightWeightedBodyweight: "weighted_bodyweight",
}

// ParseWeightType maps a catalog string to a WeightType. The second return is
// false when the string is not a known weight type; the result is then WeightUnknown.
func ParseWeightType(s string) (WeightType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for wt, name := range weightTypeNames {
		if name == s {
			return wt, true
		}
	}
	return WeightUnknown, false
}

func (w WeightType) String() string {
	if name, ok := weightTypeNames[w]; ok {
		return name
	}
	return weightTypeNames[WeightUnknown]
}

// UsesBodyweight reports whether volume for this type depends on bodyweight.
func (w WeightType) UsesBodyweight() bool {
	switch w {
	case WeightAssisted, WeightBodyweight, WeightWeightedBodyweight:
		return true
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (w WeightType) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to WeightUnknown.
func (w *WeightType) UnmarshalText(b []byte) error {
	*w, _ = ParseWeightType(string(b))
	return nil
}
