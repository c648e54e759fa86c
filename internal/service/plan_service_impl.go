package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/contract"
	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/scheduler"
	"github.com/google/uuid"
)

type planService struct {
	uow       db.UnitOfWork
	schedules repository.ScheduleRepo
	policy    scheduler.PacingPolicy
	observer  UseCaseObserver
}

// NewPlanService builds the weekly planning use case. The whole run (snapshot
// reads, allocation, persistence) executes inside one transaction so a
// schedule never mixes state from two backlog versions.
func NewPlanService(uow db.UnitOfWork, schedules repository.ScheduleRepo, observers ...UseCaseObserver) PlanService {
	return &planService{
		uow:       uow,
		schedules: schedules,
		policy:    scheduler.DefaultPacingPolicy(),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *planService) PlanWeek(ctx context.Context, req contract.PlanWeekRequest) (resp *contract.PlanWeekResponse, err error) {
	started := time.Now()
	defer func() {
		fields := map[string]any{"week_start": req.WeekStart.Format("2006-01-02"), "dry_run": req.DryRun}
		if resp != nil {
			fields["assigned"] = resp.AssignedCount
			fields["dropped"] = len(resp.Dropped)
		}
		observe(ctx, s.observer, "plan_week", started, err, fields)
	}()

	if req.WeekStart.Weekday() != time.Monday {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrInvalidWeekStart,
			Message: fmt.Sprintf("week start %s is a %s, expected a Monday", req.WeekStart.Format("2006-01-02"), req.WeekStart.Weekday()),
		}
	}
	if !domain.ValidPacingStrategies[string(req.Strategy)] {
		return nil, &contract.PlanError{
			Code:    contract.PlanErrInvalidStrategy,
			Message: fmt.Sprintf("unknown pacing strategy %q", req.Strategy),
		}
	}

	weekStart := time.Date(req.WeekStart.Year(), req.WeekStart.Month(), req.WeekStart.Day(), 0, 0, 0, 0, time.UTC)
	now := resolveNow(req.Now)

	txErr := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := newRepos(tx)

		timetable, err := r.blocks.List(ctx)
		if err != nil {
			return fmt.Errorf("loading timetable: %w", err)
		}
		exceptions, err := r.exceptions.ListBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7))
		if err != nil {
			return fmt.Errorf("loading exceptions: %w", err)
		}
		milestones, err := r.milestones.List(ctx)
		if err != nil {
			return fmt.Errorf("loading milestones: %w", err)
		}
		backlog, err := r.workItems.ListBacklog(ctx)
		if err != nil {
			return fmt.Errorf("loading backlog: %w", err)
		}

		usable := scheduler.ResolveAvailability(timetable, exceptions, weekStart)
		urgency := scheduler.Rank(milestones, now, s.policy.DefaultHorizonDays)
		entries, dropped := scheduler.Allocate(usable, backlog, urgency, req.Strategy, req.PreserveBuffer, s.policy)

		schedule := &domain.WeeklySchedule{
			ID:          uuid.New().String(),
			WeekStart:   weekStart,
			Strategy:    req.Strategy,
			GeneratedAt: now,
			Entries:     entries,
		}

		resp = buildPlanResponse(schedule, dropped, urgency, len(usable), len(timetable))
		if req.DryRun {
			return nil
		}
		if err := r.schedules.Save(ctx, schedule); err != nil {
			return fmt.Errorf("saving schedule: %w", err)
		}
		return nil
	})
	if txErr != nil {
		resp = nil
		return nil, &contract.PlanError{Code: contract.PlanErrInternal, Message: txErr.Error()}
	}
	return resp, nil
}

func (s *planService) GetWeek(ctx context.Context, weekStart time.Time) (*domain.WeeklySchedule, error) {
	return s.schedules.GetByWeek(ctx, weekStart)
}

func buildPlanResponse(schedule *domain.WeeklySchedule, dropped []domain.WorkItem, urgency map[string]float64, usable, timetabled int) *contract.PlanWeekResponse {
	resp := &contract.PlanWeekResponse{
		ScheduleID:    schedule.ID,
		WeekStart:     schedule.WeekStart,
		GeneratedAt:   schedule.GeneratedAt,
		Strategy:      schedule.Strategy,
		Entries:       schedule.Entries,
		UsableBlocks:  usable,
		AssignedCount: schedule.AssignedCount(),
		BufferCount:   usable - schedule.AssignedCount(),
	}
	for _, it := range dropped {
		resp.Dropped = append(resp.Dropped, contract.DroppedItem{
			WorkItemID: it.ID,
			Title:      it.Title,
			SubjectID:  it.SubjectID,
			Urgency:    urgency[it.MilestoneID],
		})
	}

	if timetabled > 0 && usable == 0 {
		resp.Warnings = append(resp.Warnings, "calendar exceptions removed all availability this week")
	} else if timetabled == 0 {
		resp.Warnings = append(resp.Warnings, "timetable is empty; add blocks before planning")
	}
	if n := len(resp.Dropped); n > 0 {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%d backlog item(s) did not fit and remain queued", n))
	}
	return resp
}
