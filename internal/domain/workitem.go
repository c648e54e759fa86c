package domain

import "time"

// WorkItem is a single schedulable unit of curriculum content. It belongs to
// a milestone and inherits that milestone's subject. Seq is a strictly
// increasing creation-order key allocated once at creation time; the
// allocator uses it only for deterministic tie-breaking and never re-derives
// it from wall-clock time.
type WorkItem struct {
	ID          string
	MilestoneID string
	SubjectID   string
	Title       string
	Type        string
	Tags        []string
	Status      WorkItemStatus
	Seq         int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasTag reports whether the item carries the given tag.
func (w WorkItem) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
