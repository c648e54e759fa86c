package domain

import "time"

// Milestone is a deadline-bearing grouping of work items within a subject.
// CompletionRate is derived from done vs. total work items by the service
// layer at write time; the scheduler treats it as a plain input.
type Milestone struct {
	ID             string
	SubjectID      string
	Title          string
	TargetDate     *time.Time
	CompletionRate float64 // 0..1
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m Milestone) ProgressID() string  { return m.ID }
func (m Milestone) Completion() float64 { return m.CompletionRate }
func (m Milestone) Target() *time.Time  { return m.TargetDate }

// Unit is a finer-grained slice of a milestone (e.g. one chapter of a unit
// plan) tracked at the same completion/deadline granularity. Units share the
// milestone urgency formula exactly.
type Unit struct {
	ID             string
	MilestoneID    string
	Title          string
	TargetDate     *time.Time
	CompletionRate float64 // 0..1
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u Unit) ProgressID() string  { return u.ID }
func (u Unit) Completion() float64 { return u.CompletionRate }
func (u Unit) Target() *time.Time  { return u.TargetDate }
