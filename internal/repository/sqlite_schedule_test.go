package repository

import (
	"context"
	"testing"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSchedule(week time.Time, entries []domain.ScheduleEntry) *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		ID:          uuid.New().String(),
		WeekStart:   week,
		Strategy:    domain.PacingStandard,
		GeneratedAt: time.Now().UTC(),
		Entries:     entries,
	}
}

func TestScheduleRepo_SaveAndGetRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	subjects := NewSQLiteSubjectRepo(database)
	milestones := NewSQLiteMilestoneRepo(database)
	workItems := NewSQLiteWorkItemRepo(database)
	schedules := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	subject := testutil.NewTestSubject("Science")
	require.NoError(t, subjects.Create(ctx, subject))
	ms := testutil.NewTestMilestone(subject.ID, "Ecosystems")
	require.NoError(t, milestones.Create(ctx, ms))
	item := testutil.NewTestItem(ms.ID, subject.ID, "Lab prep", testutil.WithSeq(1))
	require.NoError(t, workItems.Create(ctx, item))

	week := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	s := buildSchedule(week, []domain.ScheduleEntry{
		{Day: 0, StartMinute: 480, EndMinute: 540, SubjectID: subject.ID, WorkItemID: &item.ID},
		{Day: 0, StartMinute: 600, EndMinute: 660, SubjectID: subject.ID}, // buffer
	})
	require.NoError(t, schedules.Save(ctx, s))

	got, err := schedules.GetByWeek(ctx, week)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, domain.PacingStandard, got.Strategy)
	require.Len(t, got.Entries, 2)
	require.NotNil(t, got.Entries[0].WorkItemID)
	assert.Equal(t, item.ID, *got.Entries[0].WorkItemID)
	assert.True(t, got.Entries[1].IsBuffer(), "NULL work_item_id must round-trip as buffer")
}

func TestScheduleRepo_SaveReplacesSameWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	schedules := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	week := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	first := buildSchedule(week, []domain.ScheduleEntry{{Day: 0, StartMinute: 480, EndMinute: 540, SubjectID: "s1"}})
	second := buildSchedule(week, []domain.ScheduleEntry{
		{Day: 1, StartMinute: 480, EndMinute: 540, SubjectID: "s1"},
		{Day: 2, StartMinute: 480, EndMinute: 540, SubjectID: "s1"},
	})

	require.NoError(t, schedules.Save(ctx, first))
	require.NoError(t, schedules.Save(ctx, second))

	got, err := schedules.GetByWeek(ctx, week)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID, "regenerating a week replaces its schedule")
	assert.Len(t, got.Entries, 2)
}

func TestScheduleRepo_GetMissingWeekReturnsErrNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	schedules := NewSQLiteScheduleRepo(database)

	_, err := schedules.GetByWeek(context.Background(), time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNotFound)
}
