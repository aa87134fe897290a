package catalog

import (
	"strings"
	"unicode"
)

// MinSuggestScore is the similarity a catalogued name needs to be suggested.
const MinSuggestScore = 0.8

// Suggest returns the catalogued title closest to name, if any scores at
// least MinSuggestScore. Ties go to the alphabetically first title.
func (c *Catalog) Suggest(name string) (string, bool) {
	if c.Len() == 0 {
		return "", false
	}
	target := normalize(name)

	var best string
	var bestScore float64
	for _, candidate := range c.names {
		score := similarityScore(target, normalize(candidate))
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < MinSuggestScore {
		return "", false
	}
	return best, true
}

// normalize lowercases s, drops punctuation and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// similarityScore maps Levenshtein distance onto 0..1.
func similarityScore(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
