package scheduler

import (
	"testing"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, milestoneID, subjectID string, seq int) domain.WorkItem {
	return domain.WorkItem{ID: id, MilestoneID: milestoneID, SubjectID: subjectID, Seq: seq, Status: domain.WorkItemTodo}
}

func assignedIDs(entries []domain.ScheduleEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.WorkItemID != nil {
			ids = append(ids, *e.WorkItemID)
		}
	}
	return ids
}

func TestAllocate_RotationFairnessAcrossSubjects(t *testing.T) {
	blocks := []domain.TimeBlock{
		block("b1", 0, 480, 540, "math"),
		block("b2", 1, 480, 540, "sci"),
		block("b3", 2, 480, 540, "math"),
		block("b4", 3, 480, 540, "sci"),
	}
	items := []domain.WorkItem{
		item("m1", "ms-math", "math", 1),
		item("s1", "ms-sci", "sci", 2),
		item("m2", "ms-math", "math", 3),
		item("s2", "ms-sci", "sci", 4),
	}
	urgency := map[string]float64{"ms-math": 0.5, "ms-sci": 0.5}

	entries, dropped := Allocate(blocks, items, urgency, domain.PacingStandard, false, DefaultPacingPolicy())

	require.Len(t, entries, 4)
	assert.Empty(t, dropped)
	assert.Equal(t, []string{"m1", "s1", "m2", "s2"}, assignedIDs(entries),
		"equal urgency interleaves in creation order to match the block subject sequence")
}

func TestAllocate_MoreUrgentMilestoneTakesEarlierBlock(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	today := now
	nextWeek := now.AddDate(0, 0, 7)

	milestones := []domain.Milestone{
		{ID: "ms-a", SubjectID: "math", CompletionRate: 0.5, TargetDate: &today},
		{ID: "ms-b", SubjectID: "math", CompletionRate: 0.5, TargetDate: &nextWeek},
	}
	urgency := Rank(milestones, now, DefaultPacingPolicy().DefaultHorizonDays)
	require.Greater(t, urgency["ms-a"], urgency["ms-b"])

	blocks := []domain.TimeBlock{
		block("b1", 0, 480, 540, "math"),
		block("b2", 1, 480, 540, "math"),
	}
	items := []domain.WorkItem{
		item("wb", "ms-b", "math", 1),
		item("wa", "ms-a", "math", 2),
	}

	entries, _ := Allocate(blocks, items, urgency, domain.PacingStandard, false, DefaultPacingPolicy())

	assert.Equal(t, []string{"wa", "wb"}, assignedIDs(entries),
		"item of the due-today milestone occupies the chronologically earlier block")
}

func TestAllocate_EmptyBacklogYieldsAllBuffer(t *testing.T) {
	blocks := []domain.TimeBlock{
		block("b1", 0, 480, 540, "math"),
		block("b2", 1, 480, 540, "sci"),
	}

	entries, dropped := Allocate(blocks, nil, nil, domain.PacingStandard, false, DefaultPacingPolicy())

	require.Len(t, entries, 2, "output length always equals block count")
	assert.Empty(t, dropped)
	for _, e := range entries {
		assert.True(t, e.IsBuffer())
	}
}

func TestAllocate_NoBlocksYieldsEmptyScheduleAndDropsEverything(t *testing.T) {
	items := []domain.WorkItem{item("w1", "ms", "math", 1)}

	entries, dropped := Allocate(nil, items, map[string]float64{"ms": 0.1}, domain.PacingStandard, false, DefaultPacingPolicy())

	assert.Empty(t, entries)
	require.Len(t, dropped, 1)
	assert.Equal(t, "w1", dropped[0].ID)
}

func TestAllocate_SubjectMismatchNeverAssigned(t *testing.T) {
	blocks := []domain.TimeBlock{
		block("b1", 0, 480, 540, "art"),
		block("b2", 1, 480, 540, "math"),
	}
	items := []domain.WorkItem{item("w1", "ms", "math", 1)}

	entries, dropped := Allocate(blocks, items, map[string]float64{"ms": 0.2}, domain.PacingStandard, false, DefaultPacingPolicy())

	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsBuffer(), "art block has no matching backlog")
	require.NotNil(t, entries[1].WorkItemID)
	assert.Equal(t, "w1", *entries[1].WorkItemID)
	assert.Empty(t, dropped)
}

func TestAllocate_PreserveBufferReservesTrailingBlocks(t *testing.T) {
	// 4 math blocks on one day; standard pacing reserves floor(4*0.25)=1,
	// the chronologically last block of the day.
	blocks := []domain.TimeBlock{
		block("b1", 0, 480, 540, "math"),
		block("b2", 0, 560, 620, "math"),
		block("b3", 0, 640, 700, "math"),
		block("b4", 0, 720, 780, "math"),
	}
	items := []domain.WorkItem{
		item("w1", "ms", "math", 1),
		item("w2", "ms", "math", 2),
		item("w3", "ms", "math", 3),
		item("w4", "ms", "math", 4),
		item("w5", "ms", "math", 5),
	}

	entries, dropped := Allocate(blocks, items, map[string]float64{"ms": 0.3}, domain.PacingStandard, true, DefaultPacingPolicy())

	require.Len(t, entries, 4)
	assert.Equal(t, []string{"w1", "w2", "w3"}, assignedIDs(entries))
	assert.True(t, entries[3].IsBuffer(), "reserved block stays buffer even with backlog remaining")
	require.Len(t, dropped, 2)
	assert.Equal(t, "w4", dropped[0].ID, "drops come out in priority order")
	assert.Equal(t, "w5", dropped[1].ID)
}

func TestAllocate_StrategyControlsReservationSize(t *testing.T) {
	blocks := make([]domain.TimeBlock, 0, 10)
	items := make([]domain.WorkItem, 0, 10)
	for i := 0; i < 10; i++ {
		blocks = append(blocks, block(string(rune('a'+i)), 0, 480+i*60, 530+i*60, "math"))
		items = append(items, item(string(rune('A'+i)), "ms", "math", i+1))
	}
	urgency := map[string]float64{"ms": 0.4}

	relaxed, _ := Allocate(blocks, items, urgency, domain.PacingRelaxed, true, DefaultPacingPolicy())
	aggressive, _ := Allocate(blocks, items, urgency, domain.PacingAggressive, true, DefaultPacingPolicy())

	assert.Len(t, assignedIDs(relaxed), 6, "relaxed reserves floor(10*0.40)=4")
	assert.Len(t, assignedIDs(aggressive), 9, "aggressive reserves floor(10*0.10)=1")
}

func TestAllocate_UnknownMilestoneTreatedAsLowestPriority(t *testing.T) {
	blocks := []domain.TimeBlock{
		block("b1", 0, 480, 540, "math"),
		block("b2", 1, 480, 540, "math"),
	}
	items := []domain.WorkItem{
		item("orphan", "ms-missing", "math", 1),
		item("known", "ms-known", "math", 2),
	}

	entries, _ := Allocate(blocks, items, map[string]float64{"ms-known": 0.1}, domain.PacingStandard, false, DefaultPacingPolicy())

	assert.Equal(t, []string{"known", "orphan"}, assignedIDs(entries),
		"an item whose milestone is absent from the urgency map ranks last, not erred")
}

func TestAllocate_Idempotent(t *testing.T) {
	blocks := []domain.TimeBlock{
		block("b2", 1, 480, 540, "sci"),
		block("b1", 0, 480, 540, "math"),
		block("b3", 2, 600, 660, "math"),
	}
	items := []domain.WorkItem{
		item("w1", "ms1", "math", 1),
		item("w2", "ms2", "sci", 2),
		item("w3", "ms1", "math", 3),
	}
	urgency := map[string]float64{"ms1": 0.3, "ms2": 0.6}

	e1, d1 := Allocate(blocks, items, urgency, domain.PacingStandard, true, DefaultPacingPolicy())
	e2, d2 := Allocate(blocks, items, urgency, domain.PacingStandard, true, DefaultPacingPolicy())

	assert.Equal(t, e1, e2)
	assert.Equal(t, d1, d2)
}
