package analytics

// majorGroups maps specific muscles to the major group they roll up into.
// Muscles not listed are their own major group.
var majorGroups = map[string]string{
	"biceps":     "arms",
	"triceps":    "arms",
	"forearms":   "arms",
	"calves":     "legs",
	"quads":      "legs",
	"hamstrings": "legs",
	"glutes":     "legs",
	"upper_back": "back",
	"lats":       "back",
	"traps":      "back",
}

// MajorGroups is the dashboard's fixed tab order.
var MajorGroups = []string{"arms", "legs", "back", "chest", "shoulders", "core"}

// MajorGroup returns the major group for a specific muscle.
func MajorGroup(muscle string) string {
	if g, ok := majorGroups[muscle]; ok {
		return g
	}
	return muscle
}
