package domain

import "time"

// CalendarException removes availability from the timetable for one specific
// date. A whole-day exception (PD day, absence) removes every block on that
// date; a partial exception removes only blocks overlapping its minute range.
// Exceptions are owned by the calendar-management layer and read-only here.
type CalendarException struct {
	ID          string
	Kind        ExceptionKind
	Date        time.Time // calendar date; time-of-day is ignored
	StartMinute int       // partial only
	EndMinute   int       // partial only
	Reason      string
	CreatedAt   time.Time
}

// WholeDay reports whether the exception blanks the entire date.
func (e CalendarException) WholeDay() bool {
	return e.Kind == ExceptionWholeDay
}
