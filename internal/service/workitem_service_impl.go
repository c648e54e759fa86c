package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/scheduler"
	"github.com/google/uuid"
)

type workItemService struct {
	uow       db.UnitOfWork
	workItems repository.WorkItemRepo
}

// NewWorkItemService builds the work-item use cases. Mutations that must keep
// the item and its milestone's completion rate consistent run inside the unit
// of work; reads go through the plain repository.
func NewWorkItemService(uow db.UnitOfWork, workItems repository.WorkItemRepo) WorkItemService {
	return &workItemService{uow: uow, workItems: workItems}
}

func (s *workItemService) Create(ctx context.Context, w *domain.WorkItem) error {
	if w.Title == "" {
		return fmt.Errorf("work item title is required")
	}
	if w.Type != "" && !domain.ValidWorkItemTypes[w.Type] {
		return fmt.Errorf("unknown work item type %q", w.Type)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newRepos(tx)
		milestone, err := r.milestones.GetByID(ctx, w.MilestoneID)
		if err != nil {
			return fmt.Errorf("resolving milestone: %w", err)
		}
		// The item inherits its subject from the milestone.
		w.SubjectID = milestone.SubjectID
		if w.ID == "" {
			w.ID = uuid.New().String()
		}
		if w.Status == "" {
			w.Status = domain.WorkItemTodo
		}
		seq, err := r.seqs.NextSeq(ctx)
		if err != nil {
			return fmt.Errorf("allocating sequence: %w", err)
		}
		w.Seq = seq
		now := time.Now().UTC()
		w.CreatedAt = now
		w.UpdatedAt = now
		if err := r.workItems.Create(ctx, w); err != nil {
			return err
		}
		return refreshMilestoneCompletion(ctx, r, w.MilestoneID)
	})
}

func (s *workItemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.workItems.GetByID(ctx, id)
}

func (s *workItemService) ListBacklog(ctx context.Context) ([]domain.WorkItem, error) {
	return s.workItems.ListBacklog(ctx)
}

func (s *workItemService) ListByMilestone(ctx context.Context, milestoneID string) ([]domain.WorkItem, error) {
	return s.workItems.ListByMilestone(ctx, milestoneID)
}

func (s *workItemService) Update(ctx context.Context, w *domain.WorkItem) error {
	if w.Type != "" && !domain.ValidWorkItemTypes[w.Type] {
		return fmt.Errorf("unknown work item type %q", w.Type)
	}
	w.UpdatedAt = time.Now().UTC()
	return s.workItems.Update(ctx, w)
}

func (s *workItemService) MarkDone(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.WorkItemDone)
}

func (s *workItemService) Archive(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.WorkItemArchived)
}

func (s *workItemService) setStatus(ctx context.Context, id string, status domain.WorkItemStatus) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newRepos(tx)
		item, err := r.workItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		item.Status = status
		item.UpdatedAt = time.Now().UTC()
		if err := r.workItems.Update(ctx, item); err != nil {
			return err
		}
		return refreshMilestoneCompletion(ctx, r, item.MilestoneID)
	})
}

func (s *workItemService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newRepos(tx)
		item, err := r.workItems.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.workItems.Delete(ctx, id); err != nil {
			return err
		}
		return refreshMilestoneCompletion(ctx, r, item.MilestoneID)
	})
}

func (s *workItemService) Suggest(ctx context.Context, filters map[string]bool) ([]domain.WorkItem, error) {
	backlog, err := s.workItems.ListBacklog(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.Suggest(backlog, filters), nil
}

// refreshMilestoneCompletion recomputes the milestone's completion rate from
// its item counts after any item mutation.
func refreshMilestoneCompletion(ctx context.Context, r repos, milestoneID string) error {
	done, total, err := r.workItems.CountByMilestone(ctx, milestoneID)
	if err != nil {
		return fmt.Errorf("counting milestone items: %w", err)
	}
	milestone, err := r.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	milestone.CompletionRate = completionRate(done, total)
	milestone.UpdatedAt = time.Now().UTC()
	return r.milestones.Update(ctx, milestone)
}
