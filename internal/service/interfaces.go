package service

import (
	"context"
	"time"

	"github.com/avdelgado/paideia/internal/contract"
	"github.com/avdelgado/paideia/internal/domain"
)

type SubjectService interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	Delete(ctx context.Context, id string) error
}

type TimetableService interface {
	AddBlock(ctx context.Context, b *domain.TimeBlock) error
	ListBlocks(ctx context.Context) ([]domain.TimeBlock, error)
	ListBlocksBySubject(ctx context.Context, subjectID string) ([]domain.TimeBlock, error)
	UpdateBlock(ctx context.Context, b *domain.TimeBlock) error
	RemoveBlock(ctx context.Context, id string) error
}

type CalendarService interface {
	AddException(ctx context.Context, e *domain.CalendarException) error
	ListExceptions(ctx context.Context) ([]domain.CalendarException, error)
	// ListWeek returns exceptions falling in the week starting at weekStart.
	ListWeek(ctx context.Context, weekStart time.Time) ([]domain.CalendarException, error)
	RemoveException(ctx context.Context, id string) error
}

type MilestoneService interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context) ([]domain.Milestone, error)
	ListBySubject(ctx context.Context, subjectID string) ([]domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error

	AddUnit(ctx context.Context, u *domain.Unit) error
	ListUnits(ctx context.Context, milestoneID string) ([]domain.Unit, error)
	UpdateUnit(ctx context.Context, u *domain.Unit) error
	DeleteUnit(ctx context.Context, id string) error
}

type WorkItemService interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListBacklog(ctx context.Context) ([]domain.WorkItem, error)
	ListByMilestone(ctx context.Context, milestoneID string) ([]domain.WorkItem, error)
	Update(ctx context.Context, w *domain.WorkItem) error
	MarkDone(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// Suggest filters the current backlog by tag predicates.
	Suggest(ctx context.Context, filters map[string]bool) ([]domain.WorkItem, error)
}

type PlanService interface {
	PlanWeek(ctx context.Context, req contract.PlanWeekRequest) (*contract.PlanWeekResponse, error)
	GetWeek(ctx context.Context, weekStart time.Time) (*domain.WeeklySchedule, error)
}

type StatusService interface {
	// UrgencyReport builds the two-level urgency view. now overrides the
	// reference time; nil means wall clock.
	UrgencyReport(ctx context.Context, now *time.Time) (*contract.UrgencyReport, error)
}
