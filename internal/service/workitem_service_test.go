package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workItemFixture struct {
	db        *sql.DB
	items     WorkItemService
	milestone *domain.Milestone
	subject   *domain.Subject
}

func newWorkItemFixture(t *testing.T) *workItemFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subjects := repository.NewSQLiteSubjectRepo(database)
	milestones := repository.NewSQLiteMilestoneRepo(database)

	subject := testutil.NewTestSubject("Science")
	require.NoError(t, subjects.Create(ctx, subject))
	milestone := testutil.NewTestMilestone(subject.ID, "Ecosystems")
	require.NoError(t, milestones.Create(ctx, milestone))

	return &workItemFixture{
		db:        database,
		items:     NewWorkItemService(testutil.NewTestUoW(database), repository.NewSQLiteWorkItemRepo(database)),
		milestone: milestone,
		subject:   subject,
	}
}

func (f *workItemFixture) createItem(t *testing.T, title string, opts ...testutil.ItemOption) *domain.WorkItem {
	t.Helper()
	item := testutil.NewTestItem(f.milestone.ID, "", title, opts...)
	item.ID = ""
	require.NoError(t, f.items.Create(context.Background(), item))
	return item
}

func (f *workItemFixture) milestoneCompletion(t *testing.T) float64 {
	t.Helper()
	m, err := repository.NewSQLiteMilestoneRepo(f.db).GetByID(context.Background(), f.milestone.ID)
	require.NoError(t, err)
	return m.CompletionRate
}

func TestWorkItemService_CreateAllocatesSeqAndInheritsSubject(t *testing.T) {
	f := newWorkItemFixture(t)

	first := f.createItem(t, "Food webs")
	second := f.createItem(t, "Biomes")

	assert.Equal(t, f.subject.ID, first.SubjectID)
	assert.Equal(t, f.subject.ID, second.SubjectID)
	assert.NotEmpty(t, first.ID)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestWorkItemService_CreateRejectsUnknownMilestone(t *testing.T) {
	f := newWorkItemFixture(t)

	item := testutil.NewTestItem("no-such-milestone", "", "Orphan")
	err := f.items.Create(context.Background(), item)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWorkItemService_CreateRejectsUnknownType(t *testing.T) {
	f := newWorkItemFixture(t)

	item := testutil.NewTestItem(f.milestone.ID, "", "Mystery")
	item.Type = "field_trip"
	err := f.items.Create(context.Background(), item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field_trip")
}

func TestWorkItemService_MarkDoneRefreshesMilestoneCompletion(t *testing.T) {
	f := newWorkItemFixture(t)
	ctx := context.Background()

	first := f.createItem(t, "Food webs")
	f.createItem(t, "Biomes")
	require.Zero(t, f.milestoneCompletion(t))

	require.NoError(t, f.items.MarkDone(ctx, first.ID))
	assert.InDelta(t, 0.5, f.milestoneCompletion(t), 1e-9)

	got, err := f.items.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkItemDone, got.Status)
}

func TestWorkItemService_ArchiveExcludesFromCompletionAndBacklog(t *testing.T) {
	f := newWorkItemFixture(t)
	ctx := context.Background()

	done := f.createItem(t, "Food webs")
	archived := f.createItem(t, "Biomes")
	require.NoError(t, f.items.MarkDone(ctx, done.ID))
	require.NoError(t, f.items.Archive(ctx, archived.ID))

	// Archived items leave the denominator entirely.
	assert.InDelta(t, 1.0, f.milestoneCompletion(t), 1e-9)

	backlog, err := f.items.ListBacklog(ctx)
	require.NoError(t, err)
	assert.Empty(t, backlog)
}

func TestWorkItemService_DeleteRefreshesMilestoneCompletion(t *testing.T) {
	f := newWorkItemFixture(t)
	ctx := context.Background()

	done := f.createItem(t, "Food webs")
	extra := f.createItem(t, "Biomes")
	require.NoError(t, f.items.MarkDone(ctx, done.ID))
	require.InDelta(t, 0.5, f.milestoneCompletion(t), 1e-9)

	require.NoError(t, f.items.Delete(ctx, extra.ID))
	assert.InDelta(t, 1.0, f.milestoneCompletion(t), 1e-9)
}

func TestWorkItemService_SuggestFiltersByTag(t *testing.T) {
	f := newWorkItemFixture(t)
	ctx := context.Background()

	f.createItem(t, "Lab", testutil.WithTags("hands-on", "group"))
	solo := f.createItem(t, "Worksheet", testutil.WithTags("solo"))
	untagged := f.createItem(t, "Reading")

	got, err := f.items.Suggest(ctx, map[string]bool{"group": false})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, solo.ID, got[0].ID)
	assert.Equal(t, untagged.ID, got[1].ID)
}
