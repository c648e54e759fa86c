package service

import (
	"context"
	"testing"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_UrgencyReportOrdersBothLevels(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subjects := repository.NewSQLiteSubjectRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)
	units := repository.NewSQLiteUnitRepo(database)

	subject := testutil.NewTestSubject("Math")
	require.NoError(t, subjects.Create(ctx, subject))

	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	soon := testutil.NewTestMilestone(subject.ID, "Fractions", testutil.WithTarget(now.AddDate(0, 0, 2)))
	later := testutil.NewTestMilestone(subject.ID, "Geometry", testutil.WithTarget(now.AddDate(0, 0, 20)))
	finished := testutil.NewTestMilestone(subject.ID, "Counting",
		testutil.WithTarget(now.AddDate(0, 0, 1)), testutil.WithCompletion(1))
	for _, m := range []*domain.Milestone{soon, later, finished} {
		require.NoError(t, milestones.Create(ctx, m))
	}

	unitTarget := now.AddDate(0, 0, 4)
	require.NoError(t, units.Create(ctx, &domain.Unit{
		ID: "u1", MilestoneID: soon.ID, Title: "Halves", TargetDate: &unitTarget,
		CreatedAt: now, UpdatedAt: now,
	}))

	svc := NewStatusService(subjects, milestones, units)
	report, err := svc.UrgencyReport(ctx, &now)
	require.NoError(t, err)

	require.Len(t, report.Milestones, 3)
	assert.Equal(t, soon.ID, report.Milestones[0].MilestoneID)
	assert.Equal(t, later.ID, report.Milestones[1].MilestoneID)
	// Complete milestones rank last with zero urgency even when overdue soon.
	assert.Equal(t, finished.ID, report.Milestones[2].MilestoneID)
	assert.Zero(t, report.Milestones[2].Urgency)
	assert.Equal(t, "Math", report.Milestones[0].SubjectName)
	require.NotNil(t, report.Milestones[0].TargetDate)
	assert.Equal(t, "2025-09-03", *report.Milestones[0].TargetDate)

	require.Len(t, report.Units, 1)
	assert.Equal(t, "u1", report.Units[0].UnitID)
	assert.Equal(t, soon.ID, report.Units[0].MilestoneID)
	assert.Greater(t, report.Units[0].Urgency, 0.0)
}

func TestStatusService_MilestoneWithoutTargetUsesHorizon(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subjects := repository.NewSQLiteSubjectRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)

	subject := testutil.NewTestSubject("Art")
	require.NoError(t, subjects.Create(ctx, subject))
	open := testutil.NewTestMilestone(subject.ID, "Portfolio")
	require.NoError(t, milestones.Create(ctx, open))

	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	svc := NewStatusService(subjects, milestones, repository.NewSQLiteUnitRepo(database))
	report, err := svc.UrgencyReport(ctx, &now)
	require.NoError(t, err)

	require.Len(t, report.Milestones, 1)
	assert.Nil(t, report.Milestones[0].TargetDate)
	assert.InDelta(t, 1.0/30.0, report.Milestones[0].Urgency, 1e-9)
}
