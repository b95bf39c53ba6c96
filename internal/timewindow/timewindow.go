// Package timewindow resolves the calendar windows every aggregation query is
// filtered by: a single month, an inclusive date range, or a trailing run of
// months ending at a reference instant.
package timewindow

import (
	"fmt"
	"time"
)

// Window is a time range. Start is always inclusive. End is exclusive unless
// Closed is set, in which case an instant equal to End is contained.
type Window struct {
	Start  time.Time
	End    time.Time
	Closed bool
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.Before(w.Start) {
		return false
	}
	if w.Closed {
		return !t.After(w.End)
	}
	return t.Before(w.End)
}

// Empty reports whether no instant can fall inside the window.
func (w Window) Empty() bool {
	if w.Closed {
		return w.End.Before(w.Start)
	}
	return !w.End.After(w.Start)
}

// In returns the window with both bounds converted to loc.
func (w Window) In(loc *time.Location) Window {
	return Window{Start: w.Start.In(loc), End: w.End.In(loc), Closed: w.Closed}
}

func (w Window) String() string {
	closing := ")"
	if w.Closed {
		closing = "]"
	}
	return fmt.Sprintf("[%s, %s%s", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), closing)
}

// Month returns [first instant of month, first instant of the next month) in loc.
func Month(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// MonthOf returns the calendar month containing t, in t's location.
func MonthOf(t time.Time) Window {
	return Month(t.Year(), t.Month(), t.Location())
}

// DateRange treats both dates as inclusive calendar days in loc: the window
// starts at midnight of startDate and covers the whole of endDate. A range
// whose end precedes its start yields an empty window.
func DateRange(startDate, endDate time.Time, loc *time.Location) Window {
	start := startOfDay(startDate, loc)
	end := startOfDay(endDate, loc).AddDate(0, 0, 1)
	if end.Before(start) {
		end = start
	}
	return Window{Start: start, End: end}
}

// Trailing returns [first day of the month N-1 months before now, now].
// n below 1 is treated as 1.
func Trailing(now time.Time, n int) Window {
	if n < 1 {
		n = 1
	}
	first := FirstOfMonth(now)
	return Window{Start: first.AddDate(0, -(n - 1), 0), End: now, Closed: true}
}

// TrailingMonths lists the first instant of each month covered by
// Trailing(now, n), oldest first.
func TrailingMonths(now time.Time, n int) []time.Time {
	if n < 1 {
		n = 1
	}
	first := FirstOfMonth(now)
	months := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, first.AddDate(0, -i, 0))
	}
	return months
}

// FirstOfMonth returns midnight of day 1 of t's month, in t's location.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthLabel formats t's month as YYYY-MM.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// ValidMonth reports whether month is within 1-12.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
