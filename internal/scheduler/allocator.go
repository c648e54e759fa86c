package scheduler

import (
	"sort"

	"github.com/avdelgado/paideia/internal/domain"
)

// Allocate assigns work items to usable time blocks for one week. It is a
// pure function of its inputs: blocks are visited in chronological order,
// each subject's backlog is consumed most-urgent-first (ties by creation
// order), and blocks reserved as buffer by the pacing policy are never
// offered work. Returns one entry per input block plus the items that did
// not fit this week, in priority order.
//
// Capacity mismatches are never errors: missing work becomes buffer entries,
// excess work becomes drops. A work item whose milestone is absent from the
// urgency map is treated as urgency 0, not rejected.
func Allocate(
	blocks []domain.TimeBlock,
	items []domain.WorkItem,
	urgency map[string]float64,
	strategy domain.PacingStrategy,
	preserveBuffer bool,
	policy PacingPolicy,
) ([]domain.ScheduleEntry, []domain.WorkItem) {
	sorted := make([]domain.TimeBlock, len(blocks))
	copy(sorted, blocks)
	SortBlocks(sorted)

	queues := buildQueues(items, urgency)
	reserved := reservedIndexes(sorted, strategy, preserveBuffer, policy)

	entries := make([]domain.ScheduleEntry, 0, len(sorted))
	cursors := make(map[string]int, len(queues))
	for i, b := range sorted {
		entry := domain.ScheduleEntry{
			Day:         b.Day,
			StartMinute: b.StartMinute,
			EndMinute:   b.EndMinute,
			SubjectID:   b.SubjectID,
		}
		if !reserved[i] {
			q := queues[b.SubjectID]
			if c := cursors[b.SubjectID]; c < len(q) {
				id := q[c].ID
				entry.WorkItemID = &id
				cursors[b.SubjectID] = c + 1
			}
		}
		entries = append(entries, entry)
	}

	return entries, remainingItems(queues, cursors)
}

// buildQueues groups the backlog into independent per-subject queues, each
// ordered by descending milestone urgency, ties by ascending Seq.
func buildQueues(items []domain.WorkItem, urgency map[string]float64) map[string][]domain.WorkItem {
	queues := make(map[string][]domain.WorkItem)
	for _, it := range items {
		queues[it.SubjectID] = append(queues[it.SubjectID], it)
	}
	for _, q := range queues {
		sort.SliceStable(q, func(i, j int) bool {
			ui, uj := urgency[q[i].MilestoneID], urgency[q[j].MilestoneID]
			if ui != uj {
				return ui > uj
			}
			return q[i].Seq < q[j].Seq
		})
	}
	return queues
}

// reservedIndexes marks which positions of the sorted block slice are
// reserved as buffer. Reservation is per day: the policy decides how many of
// the day's blocks to hold back, and the chronologically last blocks of the
// day are the ones held.
func reservedIndexes(sorted []domain.TimeBlock, strategy domain.PacingStrategy, preserveBuffer bool, policy PacingPolicy) map[int]bool {
	if !preserveBuffer {
		return nil
	}

	byDay := make(map[int][]int)
	for i, b := range sorted {
		byDay[b.Day] = append(byDay[b.Day], i)
	}

	reserved := make(map[int]bool)
	for _, indexes := range byDay {
		r := policy.reservedFor(strategy, len(indexes))
		for k := len(indexes) - r; k < len(indexes); k++ {
			reserved[indexes[k]] = true
		}
	}
	return reserved
}

// remainingItems flattens the unconsumed queue tails in deterministic order:
// subjects ascending, then queue priority order.
func remainingItems(queues map[string][]domain.WorkItem, cursors map[string]int) []domain.WorkItem {
	subjects := make([]string, 0, len(queues))
	for s := range queues {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	var dropped []domain.WorkItem
	for _, s := range subjects {
		dropped = append(dropped, queues[s][cursors[s]:]...)
	}
	return dropped
}
