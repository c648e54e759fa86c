package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/avdelgado/paideia/internal/contract"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planWeekStart = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) // a Monday

type planFixture struct {
	db        *sql.DB
	plan      PlanService
	schedules repository.ScheduleRepo
	subject   *domain.Subject
	milestone *domain.Milestone
}

// newPlanFixture seeds one subject with three blocks (two Monday, one
// Tuesday) and a near-deadline milestone with two backlog items.
func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	subjects := repository.NewSQLiteSubjectRepo(database)
	blocks := repository.NewSQLiteTimeBlockRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	items := repository.NewSQLiteWorkItemRepo(database)
	schedules := repository.NewSQLiteScheduleRepo(database)

	subject := testutil.NewTestSubject("Math")
	require.NoError(t, subjects.Create(ctx, subject))
	require.NoError(t, blocks.Create(ctx, testutil.NewTestBlock(subject.ID, 0, testutil.WithMinutes(480, 540))))
	require.NoError(t, blocks.Create(ctx, testutil.NewTestBlock(subject.ID, 0, testutil.WithMinutes(600, 660))))
	require.NoError(t, blocks.Create(ctx, testutil.NewTestBlock(subject.ID, 1, testutil.WithMinutes(480, 540))))

	milestone := testutil.NewTestMilestone(subject.ID, "Fractions unit",
		testutil.WithTarget(planWeekStart.AddDate(0, 0, 10)))
	require.NoError(t, milestones.Create(ctx, milestone))
	require.NoError(t, items.Create(ctx, testutil.NewTestItem(milestone.ID, subject.ID, "Lesson 1", testutil.WithSeq(1))))
	require.NoError(t, items.Create(ctx, testutil.NewTestItem(milestone.ID, subject.ID, "Lesson 2", testutil.WithSeq(2))))

	return &planFixture{
		db:        database,
		plan:      NewPlanService(uow, schedules),
		schedules: schedules,
		subject:   subject,
		milestone: milestone,
	}
}

func planRequest() contract.PlanWeekRequest {
	req := contract.NewPlanWeekRequest(planWeekStart)
	now := planWeekStart.Add(-48 * time.Hour)
	req.Now = &now
	return req
}

func TestPlanWeek_GeneratesAndPersistsSchedule(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	resp, err := f.plan.PlanWeek(ctx, planRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.UsableBlocks)
	assert.Len(t, resp.Entries, 3)
	// Standard pacing on a 2-block Monday reserves nothing (floor(2*0.25)=0)
	// so both items land on Monday; Tuesday's lone block stays buffer.
	assert.Equal(t, 2, resp.AssignedCount)
	assert.Equal(t, 1, resp.BufferCount)
	assert.Empty(t, resp.Dropped)

	stored, err := f.schedules.GetByWeek(ctx, planWeekStart)
	require.NoError(t, err)
	assert.Equal(t, resp.ScheduleID, stored.ID)
	assert.Equal(t, domain.PacingStandard, stored.Strategy)
	require.Len(t, stored.Entries, 3)
	assert.Equal(t, 2, stored.AssignedCount())
}

func TestPlanWeek_ReplacesPreviousRunForSameWeek(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	first, err := f.plan.PlanWeek(ctx, planRequest())
	require.NoError(t, err)
	second, err := f.plan.PlanWeek(ctx, planRequest())
	require.NoError(t, err)
	require.NotEqual(t, first.ScheduleID, second.ScheduleID)

	stored, err := f.schedules.GetByWeek(ctx, planWeekStart)
	require.NoError(t, err)
	assert.Equal(t, second.ScheduleID, stored.ID)
}

func TestPlanWeek_DryRunDoesNotPersist(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	req := planRequest()
	req.DryRun = true
	resp, err := f.plan.PlanWeek(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 3)

	_, err = f.schedules.GetByWeek(ctx, planWeekStart)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanWeek_RejectsNonMondayWeekStart(t *testing.T) {
	f := newPlanFixture(t)

	req := planRequest()
	req.WeekStart = planWeekStart.AddDate(0, 0, 2)
	_, err := f.plan.PlanWeek(context.Background(), req)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.PlanErrInvalidWeekStart, planErr.Code)
}

func TestPlanWeek_RejectsUnknownStrategy(t *testing.T) {
	f := newPlanFixture(t)

	req := planRequest()
	req.Strategy = domain.PacingStrategy("frantic")
	_, err := f.plan.PlanWeek(context.Background(), req)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.PlanErrInvalidStrategy, planErr.Code)
}

func TestPlanWeek_WholeDayExceptionRemovesMonday(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	exceptions := repository.NewSQLiteExceptionRepo(f.db)
	require.NoError(t, exceptions.Create(ctx, &domain.CalendarException{
		ID: uuid.New().String(), Kind: domain.ExceptionWholeDay,
		Date: planWeekStart, Reason: "PD day", CreatedAt: time.Now().UTC(),
	}))

	resp, err := f.plan.PlanWeek(ctx, planRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UsableBlocks)
	assert.Equal(t, 1, resp.AssignedCount)
	require.Len(t, resp.Dropped, 1)
	assert.Equal(t, "Lesson 2", resp.Dropped[0].Title)
	assert.NotEmpty(t, resp.Warnings)
}

func TestPlanWeek_AllAvailabilityRemovedWarns(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	exceptions := repository.NewSQLiteExceptionRepo(f.db)
	for day := 0; day < 2; day++ {
		require.NoError(t, exceptions.Create(ctx, &domain.CalendarException{
			ID: uuid.New().String(), Kind: domain.ExceptionWholeDay,
			Date: planWeekStart.AddDate(0, 0, day), CreatedAt: time.Now().UTC(),
		}))
	}

	resp, err := f.plan.PlanWeek(ctx, planRequest())
	require.NoError(t, err)
	assert.Zero(t, resp.UsableBlocks)
	assert.Empty(t, resp.Entries)
	assert.Contains(t, resp.Warnings[0], "removed all availability")
}

func TestPlanWeek_PersistFailureRollsBackWholeRun(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	// First exec of the persist phase is the week-replace delete.
	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: f.db, FailOn: 1, Err: boom}
	plan := NewPlanService(failing, f.schedules)

	_, err := plan.PlanWeek(ctx, planRequest())
	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.PlanErrInternal, planErr.Code)

	_, err = f.schedules.GetByWeek(ctx, planWeekStart)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanWeek_GetWeekMissingReturnsNotFound(t *testing.T) {
	f := newPlanFixture(t)

	_, err := f.plan.GetWeek(context.Background(), planWeekStart)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
