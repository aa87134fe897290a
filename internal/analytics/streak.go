// Package analytics derives dashboard figures from enriched sets.
package analytics

import (
	"sort"
	"time"

	"github.com/meltforce/hevystats/internal/models"
)

// ISOWeek is an ISO 8601 (year, week) pair.
type ISOWeek struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

// WeekOf returns the ISO week containing t.
func WeekOf(t time.Time) ISOWeek {
	y, w := t.ISOWeek()
	return ISOWeek{Year: y, Week: w}
}

// Monday returns the Monday that starts the ISO week, in UTC.
func (w ISOWeek) Monday() time.Time {
	// January 4th always falls in ISO week 1.
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	week1 := jan4.AddDate(0, 0, -offset)
	return week1.AddDate(0, 0, (w.Week-1)*7)
}

// WeeksSince returns how many whole weeks w lies after earlier.
func (w ISOWeek) WeeksSince(earlier ISOWeek) int {
	days := w.Monday().Sub(earlier.Monday()).Hours() / 24
	return int(days) / 7
}

// Before reports whether w precedes o.
func (w ISOWeek) Before(o ISOWeek) bool {
	if w.Year != o.Year {
		return w.Year < o.Year
	}
	return w.Week < o.Week
}

// Streak is the weekly streak as seen from CurrentWeek.
type Streak struct {
	Weeks       int     `json:"weeks"`
	CurrentWeek ISOWeek `json:"current_week"`
}

// StreakAt reports the weekly streak of sets as of now.
func StreakAt(sets []models.EnrichedSet, now time.Time) Streak {
	return Streak{Weeks: WeeklyStreak(sets, now), CurrentWeek: WeekOf(now)}
}

// WeeklyStreak counts consecutive trained ISO weeks ending at or one week
// before the week containing now.
func WeeklyStreak(sets []models.EnrichedSet, now time.Time) int {
	weeks := make([]ISOWeek, 0, len(sets))
	for _, s := range sets {
		weeks = append(weeks, WeekOf(s.StartTime))
	}
	return StreakFromWeeks(weeks, WeekOf(now))
}

// StreakFromWeeks computes the streak from raw week observations. Duplicates
// are ignored. The streak is zero when the latest trained week is more than
// one week behind current.
func StreakFromWeeks(weeks []ISOWeek, current ISOWeek) int {
	distinct := make(map[ISOWeek]struct{}, len(weeks))
	for _, w := range weeks {
		distinct[w] = struct{}{}
	}
	if len(distinct) == 0 {
		return 0
	}

	sorted := make([]ISOWeek, 0, len(distinct))
	for w := range distinct {
		sorted = append(sorted, w)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[j].Before(sorted[i]) })

	if current.WeeksSince(sorted[0]) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].WeeksSince(sorted[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}
