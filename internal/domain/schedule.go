package domain

import "time"

// ScheduleEntry assigns one timetable block of the planning week either a
// work item or, when WorkItemID is nil, deliberate buffer time.
type ScheduleEntry struct {
	Day         int
	StartMinute int
	EndMinute   int
	SubjectID   string
	WorkItemID  *string
}

// IsBuffer reports whether the entry is deliberately unassigned flex time.
func (e ScheduleEntry) IsBuffer() bool {
	return e.WorkItemID == nil
}

// WeeklySchedule is one persisted planning run: the full set of entries for
// the week starting at WeekStart (a Monday). Schedules are recomputed from
// scratch every run; regenerating a week replaces its previous schedule.
type WeeklySchedule struct {
	ID          string
	WeekStart   time.Time
	Strategy    PacingStrategy
	GeneratedAt time.Time
	Entries     []ScheduleEntry
}

// AssignedCount returns the number of non-buffer entries.
func (s WeeklySchedule) AssignedCount() int {
	n := 0
	for _, e := range s.Entries {
		if !e.IsBuffer() {
			n++
		}
	}
	return n
}
