package contract

import "time"

// MilestoneUrgency is one row of the milestone-level urgency board.
type MilestoneUrgency struct {
	MilestoneID string
	Title       string
	SubjectID   string
	SubjectName string
	TargetDate  *string // YYYY-MM-DD
	Completion  float64
	Urgency     float64
}

// UnitUrgency is one row of the finer per-unit pacing view. It is scored
// with the same formula as MilestoneUrgency.
type UnitUrgency struct {
	UnitID      string
	MilestoneID string
	Title       string
	TargetDate  *string
	Completion  float64
	Urgency     float64
}

// UrgencyReport is the full two-level urgency view, both levels sorted
// descending by urgency.
type UrgencyReport struct {
	GeneratedAt time.Time
	Milestones  []MilestoneUrgency
	Units       []UnitUrgency
}
