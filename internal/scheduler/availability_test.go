package scheduler

import (
	"testing"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weekStart is a Monday.
var weekStart = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

func block(id string, day, start, end int, subjectID string) domain.TimeBlock {
	return domain.TimeBlock{ID: id, Day: day, StartMinute: start, EndMinute: end, SubjectID: subjectID}
}

func TestResolveAvailability_NoExceptionsKeepsAllBlocks(t *testing.T) {
	timetable := []domain.TimeBlock{
		block("b2", 1, 540, 600, "sci"),
		block("b1", 0, 480, 540, "math"),
	}

	usable := ResolveAvailability(timetable, nil, weekStart)

	require.Len(t, usable, 2)
	assert.Equal(t, "b1", usable[0].ID, "output must be chronological regardless of input order")
	assert.Equal(t, "b2", usable[1].ID)
}

func TestResolveAvailability_WholeDayExceptionRemovesEveryBlockOnDate(t *testing.T) {
	timetable := []domain.TimeBlock{
		block("b1", 0, 480, 540, "math"),
		block("b2", 0, 600, 660, "sci"),
		block("b3", 1, 480, 540, "math"),
	}
	exceptions := []domain.CalendarException{
		{ID: "ex1", Kind: domain.ExceptionWholeDay, Date: weekStart, Reason: "PD day"},
	}

	usable := ResolveAvailability(timetable, exceptions, weekStart)

	require.Len(t, usable, 1)
	assert.Equal(t, "b3", usable[0].ID)
}

func TestResolveAvailability_PartialExceptionExcludesOnlyOverlap(t *testing.T) {
	timetable := []domain.TimeBlock{
		block("b1", 2, 480, 540, "math"),
		block("b2", 2, 540, 600, "sci"),
		block("b3", 2, 600, 660, "math"),
	}
	exceptions := []domain.CalendarException{
		{
			ID:          "ex1",
			Kind:        domain.ExceptionPartial,
			Date:        weekStart.AddDate(0, 0, 2),
			StartMinute: 500,
			EndMinute:   560,
			Reason:      "assembly",
		},
	}

	usable := ResolveAvailability(timetable, exceptions, weekStart)

	require.Len(t, usable, 1)
	assert.Equal(t, "b3", usable[0].ID, "b1 and b2 overlap the assembly window, b3 does not")
}

func TestResolveAvailability_BoundaryTouchIsNotOverlap(t *testing.T) {
	timetable := []domain.TimeBlock{block("b1", 0, 480, 540, "math")}
	exceptions := []domain.CalendarException{
		{ID: "ex1", Kind: domain.ExceptionPartial, Date: weekStart, StartMinute: 540, EndMinute: 600},
		{ID: "ex2", Kind: domain.ExceptionPartial, Date: weekStart, StartMinute: 420, EndMinute: 480},
	}

	usable := ResolveAvailability(timetable, exceptions, weekStart)

	assert.Len(t, usable, 1, "exceptions ending/starting exactly at block edges must not exclude")
}

func TestResolveAvailability_ZeroLengthExceptionNeverExcludes(t *testing.T) {
	timetable := []domain.TimeBlock{block("b1", 0, 480, 540, "math")}
	exceptions := []domain.CalendarException{
		{ID: "ex1", Kind: domain.ExceptionPartial, Date: weekStart, StartMinute: 500, EndMinute: 500},
	}

	usable := ResolveAvailability(timetable, exceptions, weekStart)

	assert.Len(t, usable, 1, "overlap must be strictly positive to exclude")
}

func TestResolveAvailability_ExceptionOnOtherWeekIgnored(t *testing.T) {
	timetable := []domain.TimeBlock{block("b1", 0, 480, 540, "math")}
	exceptions := []domain.CalendarException{
		{ID: "ex1", Kind: domain.ExceptionWholeDay, Date: weekStart.AddDate(0, 0, 7)},
	}

	usable := ResolveAvailability(timetable, exceptions, weekStart)

	assert.Len(t, usable, 1)
}

func TestResolveAvailability_InputNotMutated(t *testing.T) {
	timetable := []domain.TimeBlock{
		block("b2", 1, 540, 600, "sci"),
		block("b1", 0, 480, 540, "math"),
	}

	_ = ResolveAvailability(timetable, nil, weekStart)

	assert.Equal(t, "b2", timetable[0].ID, "resolver must not reorder its input")
}
