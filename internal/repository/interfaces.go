package repository

import (
	"context"
	"errors"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	Delete(ctx context.Context, id string) error
}

type TimeBlockRepo interface {
	Create(ctx context.Context, b *domain.TimeBlock) error
	GetByID(ctx context.Context, id string) (*domain.TimeBlock, error)
	List(ctx context.Context) ([]domain.TimeBlock, error)
	ListBySubject(ctx context.Context, subjectID string) ([]domain.TimeBlock, error)
	Update(ctx context.Context, b *domain.TimeBlock) error
	Delete(ctx context.Context, id string) error
}

type ExceptionRepo interface {
	Create(ctx context.Context, e *domain.CalendarException) error
	List(ctx context.Context) ([]domain.CalendarException, error)
	// ListBetween returns exceptions whose date falls in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.CalendarException, error)
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context) ([]domain.Milestone, error)
	ListBySubject(ctx context.Context, subjectID string) ([]domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type UnitRepo interface {
	Create(ctx context.Context, u *domain.Unit) error
	List(ctx context.Context) ([]domain.Unit, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]domain.Unit, error)
	Update(ctx context.Context, u *domain.Unit) error
	Delete(ctx context.Context, id string) error
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	// ListBacklog returns all items still eligible for scheduling (status
	// todo), ordered by seq.
	ListBacklog(ctx context.Context) ([]domain.WorkItem, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]domain.WorkItem, error)
	// CountByMilestone returns (done, total) counts over non-archived items.
	CountByMilestone(ctx context.Context, milestoneID string) (done, total int, err error)
	Update(ctx context.Context, w *domain.WorkItem) error
	Delete(ctx context.Context, id string) error
}

// SequenceRepo allocates the monotonic creation-order key for work items.
type SequenceRepo interface {
	NextSeq(ctx context.Context) (int, error)
}

type ScheduleRepo interface {
	// Save persists a schedule, replacing any existing schedule for the
	// same week.
	Save(ctx context.Context, s *domain.WeeklySchedule) error
	GetByWeek(ctx context.Context, weekStart time.Time) (*domain.WeeklySchedule, error)
	Delete(ctx context.Context, id string) error
}
