package contract

import (
	"time"

	"github.com/avdelgado/paideia/internal/domain"
)

// PlanWeekRequest asks for a fresh schedule for the week starting at
// WeekStart (a Monday). Now overrides the urgency reference time, used by
// tests; nil means wall clock.
type PlanWeekRequest struct {
	WeekStart      time.Time
	Strategy       domain.PacingStrategy
	PreserveBuffer bool
	Now            *time.Time
	// DryRun computes the schedule without persisting it.
	DryRun bool
}

func NewPlanWeekRequest(weekStart time.Time) PlanWeekRequest {
	return PlanWeekRequest{
		WeekStart:      weekStart,
		Strategy:       domain.PacingStandard,
		PreserveBuffer: true,
	}
}

// DroppedItem describes one backlog item that did not fit this week. Drops
// are diagnostics, not errors: the item stays in the backlog for future runs.
type DroppedItem struct {
	WorkItemID string
	Title      string
	SubjectID  string
	Urgency    float64
}

type PlanWeekResponse struct {
	ScheduleID    string
	WeekStart     time.Time
	GeneratedAt   time.Time
	Strategy      domain.PacingStrategy
	Entries       []domain.ScheduleEntry
	Dropped       []DroppedItem
	UsableBlocks  int
	AssignedCount int
	BufferCount   int
	Warnings      []string
}

type PlanErrorCode string

const (
	PlanErrInvalidWeekStart PlanErrorCode = "INVALID_WEEK_START"
	PlanErrInvalidStrategy  PlanErrorCode = "INVALID_STRATEGY"
	PlanErrInternal         PlanErrorCode = "INTERNAL_ERROR"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
