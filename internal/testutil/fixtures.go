package testutil

import (
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/google/uuid"
)

// Subject options
type SubjectOption func(*domain.Subject)

func WithColor(hex string) SubjectOption {
	return func(s *domain.Subject) {
		s.Color = hex
	}
}

func NewTestSubject(name string, opts ...SubjectOption) *domain.Subject {
	now := time.Now().UTC()
	s := &domain.Subject{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TimeBlock options
type BlockOption func(*domain.TimeBlock)

func WithMinutes(start, end int) BlockOption {
	return func(b *domain.TimeBlock) {
		b.StartMinute = start
		b.EndMinute = end
	}
}

func NewTestBlock(subjectID string, day int, opts ...BlockOption) *domain.TimeBlock {
	now := time.Now().UTC()
	b := &domain.TimeBlock{
		ID:          uuid.New().String(),
		SubjectID:   subjectID,
		Day:         day,
		StartMinute: 480,
		EndMinute:   540,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithTarget(d time.Time) MilestoneOption {
	return func(m *domain.Milestone) {
		m.TargetDate = &d
	}
}

func WithCompletion(rate float64) MilestoneOption {
	return func(m *domain.Milestone) {
		m.CompletionRate = rate
	}
}

func NewTestMilestone(subjectID, title string, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC()
	m := &domain.Milestone{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WorkItem options
type ItemOption func(*domain.WorkItem)

func WithTags(tags ...string) ItemOption {
	return func(w *domain.WorkItem) {
		w.Tags = tags
	}
}

func WithStatus(s domain.WorkItemStatus) ItemOption {
	return func(w *domain.WorkItem) {
		w.Status = s
	}
}

func WithSeq(seq int) ItemOption {
	return func(w *domain.WorkItem) {
		w.Seq = seq
	}
}

func NewTestItem(milestoneID, subjectID, title string, opts ...ItemOption) *domain.WorkItem {
	now := time.Now().UTC()
	w := &domain.WorkItem{
		ID:          uuid.New().String(),
		MilestoneID: milestoneID,
		SubjectID:   subjectID,
		Title:       title,
		Type:        "activity",
		Status:      domain.WorkItemTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}
