package domain

import "time"

// DaysPerWeek is the number of teaching days in a planning week (Mon-Fri).
const DaysPerWeek = 5

// TimeBlock is one fixed, recurring slot of the weekly timetable: a day
// (0=Monday .. 4=Friday), a minute range within that day, and the subject
// taught in it. Blocks repeat every week and are never mutated by the
// allocator.
type TimeBlock struct {
	ID          string
	SubjectID   string
	Day         int // 0=Monday .. 4=Friday
	StartMinute int // minutes since midnight
	EndMinute   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration returns the block length in minutes.
func (b TimeBlock) Duration() int {
	return b.EndMinute - b.StartMinute
}

// OverlapsWindow reports whether [start, end) overlaps the block's minute
// range with strictly positive duration. Zero-length touching at either
// boundary is not an overlap.
func (b TimeBlock) OverlapsWindow(start, end int) bool {
	return start < b.EndMinute && b.StartMinute < end
}

// DateIn returns the calendar date this block falls on within the week
// starting at weekStart (weekStart must be the Monday of the target week).
func (b TimeBlock) DateIn(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, b.Day)
}

// SameDate reports whether two timestamps fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
