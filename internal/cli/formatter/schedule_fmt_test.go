package formatter

import (
	"testing"
	"time"

	"github.com/avdelgado/paideia/internal/contract"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatSchedule_GroupsByDayAndMarksBuffer(t *testing.T) {
	itemID := "w1"
	ws := &domain.WeeklySchedule{
		WeekStart: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Strategy:  domain.PacingStandard,
		Entries: []domain.ScheduleEntry{
			{Day: 0, StartMinute: 480, EndMinute: 540, SubjectID: "s1", WorkItemID: &itemID},
			{Day: 2, StartMinute: 600, EndMinute: 660, SubjectID: "s1"},
		},
	}

	out := FormatSchedule(ws,
		map[string]string{"s1": "Math"},
		map[string]string{"w1": "Fractions intro"})

	assert.Contains(t, out, "Monday Sep 1")
	assert.Contains(t, out, "Wednesday Sep 3")
	assert.Contains(t, out, "08:00-09:00")
	assert.Contains(t, out, "Fractions intro")
	assert.Contains(t, out, "buffer")
	assert.Contains(t, out, "STANDARD PACING")
}

func TestFormatSchedule_EmptyWeek(t *testing.T) {
	ws := &domain.WeeklySchedule{
		WeekStart: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Strategy:  domain.PacingRelaxed,
	}
	out := FormatSchedule(ws, nil, nil)
	assert.Contains(t, out, "No usable blocks this week.")
}

func TestFormatPlanSummary_ListsDroppedAndWarnings(t *testing.T) {
	resp := &contract.PlanWeekResponse{
		WeekStart:     time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Strategy:      domain.PacingAggressive,
		UsableBlocks:  2,
		AssignedCount: 2,
		Dropped: []contract.DroppedItem{
			{WorkItemID: "w9", Title: "Quiz review", SubjectID: "s1", Urgency: 0.25},
		},
		Warnings: []string{"1 backlog item(s) did not fit and remain queued"},
	}

	out := FormatPlanSummary(resp, map[string]string{"s1": "Math"}, nil)
	assert.Contains(t, out, "Did not fit (1):")
	assert.Contains(t, out, "Quiz review")
	assert.Contains(t, out, "0.250")
	assert.Contains(t, out, "remain queued")
}

func TestFormatUrgencyReport(t *testing.T) {
	target := "2025-09-10"
	report := &contract.UrgencyReport{
		GeneratedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Milestones: []contract.MilestoneUrgency{
			{MilestoneID: "m1", Title: "Fractions", SubjectName: "Math", TargetDate: &target, Completion: 0.4, Urgency: 0.066},
			{MilestoneID: "m2", Title: "Portfolio", SubjectName: "Art", Completion: 1, Urgency: 0},
		},
		Units: []contract.UnitUrgency{
			{UnitID: "u1", MilestoneID: "m1", Title: "Halves", Urgency: 0.1},
		},
	}

	out := FormatUrgencyReport(report, false)
	assert.Contains(t, out, "Fractions")
	assert.Contains(t, out, "2025-09-10")
	assert.Contains(t, out, "done")
	assert.NotContains(t, out, "Halves")

	withUnits := FormatUrgencyReport(report, true)
	assert.Contains(t, withUnits, "Halves")
	assert.Contains(t, withUnits, "UNIT")
}

func TestFormatUrgencyReport_Empty(t *testing.T) {
	out := FormatUrgencyReport(&contract.UrgencyReport{}, true)
	assert.Contains(t, out, "No milestones yet.")
}
