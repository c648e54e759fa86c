package domain

import "time"

// Subject is a taught discipline (e.g. Math, Science). Timetable blocks and
// milestones are both bound to exactly one subject.
type Subject struct {
	ID        string
	Name      string
	Color     string // optional hex color used by CLI rendering
	CreatedAt time.Time
	UpdatedAt time.Time
}
