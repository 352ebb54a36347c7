// Package streak computes posting streaks and content-buffer metrics.
// This is part of the Functional Core - no I/O, only pure functions.
package streak

import (
	"sort"
	"time"
)

// DefaultWindowDays bounds how far back a streak is searched.
const DefaultWindowDays = 60

// Entry is one day of a posting log.
type Entry struct {
	Date  time.Time
	Count int
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PostDates returns the distinct days with at least one post inside the
// window ending today, most recent first. Future days are ignored.
func PostDates(entries []Entry, today time.Time, windowDays int) []time.Time {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	today = Day(today)
	earliest := today.AddDate(0, 0, -(windowDays - 1))

	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, e := range entries {
		if e.Count < 1 {
			continue
		}
		d := Day(e.Date)
		if d.After(today) || d.Before(earliest) || seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates
}

// Compute walks back from today counting consecutive posting days. The first
// step may start at yesterday so a day without a post yet does not break the
// streak; after that every day must follow directly.
func Compute(entries []Entry, today time.Time, windowDays int) int {
	check := Day(today)
	streak := 0
	for _, d := range PostDates(entries, today, windowDays) {
		if d.Equal(check) || d.Equal(check.AddDate(0, 0, -1)) {
			streak++
			check = d
			continue
		}
		break
	}
	return streak
}

// Buffer is scheduled minus posted content. It may be negative.
func Buffer(scheduled, posted int) int {
	return scheduled - posted
}
