package scheduler

import (
	"sort"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
)

// ResolveAvailability turns the fixed weekly timetable plus calendar
// exceptions into the blocks actually usable in the week starting at
// weekStart (the Monday of the target week). A block is excluded when a
// whole-day exception falls on its date, or when a partial exception on that
// date overlaps it with strictly positive duration. Pure function; input
// order does not matter, output is chronological.
func ResolveAvailability(timetable []domain.TimeBlock, exceptions []domain.CalendarException, weekStart time.Time) []domain.TimeBlock {
	usable := make([]domain.TimeBlock, 0, len(timetable))
	for _, b := range timetable {
		if !excludedByException(b, exceptions, weekStart) {
			usable = append(usable, b)
		}
	}
	SortBlocks(usable)
	return usable
}

func excludedByException(b domain.TimeBlock, exceptions []domain.CalendarException, weekStart time.Time) bool {
	date := b.DateIn(weekStart)
	for _, ex := range exceptions {
		if !domain.SameDate(ex.Date, date) {
			continue
		}
		if ex.WholeDay() {
			return true
		}
		if b.OverlapsWindow(ex.StartMinute, ex.EndMinute) {
			return true
		}
	}
	return false
}

// SortBlocks orders blocks chronologically by (day, start minute), ties by
// end minute then ID. This order is the allocator's iteration order.
func SortBlocks(blocks []domain.TimeBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i], blocks[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		if a.EndMinute != b.EndMinute {
			return a.EndMinute < b.EndMinute
		}
		return a.ID < b.ID
	})
}
