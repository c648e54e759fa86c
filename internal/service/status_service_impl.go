package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/contract"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/avdelgado/paideia/internal/scheduler"
)

type statusService struct {
	subjects   repository.SubjectRepo
	milestones repository.MilestoneRepo
	units      repository.UnitRepo
	policy     scheduler.PacingPolicy
}

func NewStatusService(subjects repository.SubjectRepo, milestones repository.MilestoneRepo, units repository.UnitRepo) StatusService {
	return &statusService{
		subjects:   subjects,
		milestones: milestones,
		units:      units,
		policy:     scheduler.DefaultPacingPolicy(),
	}
}

func (s *statusService) UrgencyReport(ctx context.Context, now *time.Time) (*contract.UrgencyReport, error) {
	ref := resolveNow(now)

	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading subjects: %w", err)
	}
	milestones, err := s.milestones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}

	subjectNames := make(map[string]string, len(subjects))
	for _, sub := range subjects {
		subjectNames[sub.ID] = sub.Name
	}
	milestonesByID := make(map[string]domain.Milestone, len(milestones))
	for _, m := range milestones {
		milestonesByID[m.ID] = m
	}
	unitsByID := make(map[string]domain.Unit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
	}

	report := &contract.UrgencyReport{GeneratedAt: ref}
	for _, ranked := range scheduler.SortedByUrgency(milestones, ref, s.policy.DefaultHorizonDays) {
		m := milestonesByID[ranked.ID]
		report.Milestones = append(report.Milestones, contract.MilestoneUrgency{
			MilestoneID: m.ID,
			Title:       m.Title,
			SubjectID:   m.SubjectID,
			SubjectName: subjectNames[m.SubjectID],
			TargetDate:  formatTarget(m.TargetDate),
			Completion:  m.CompletionRate,
			Urgency:     ranked.Urgency,
		})
	}
	for _, ranked := range scheduler.SortedByUrgency(units, ref, s.policy.DefaultHorizonDays) {
		u := unitsByID[ranked.ID]
		report.Units = append(report.Units, contract.UnitUrgency{
			UnitID:      u.ID,
			MilestoneID: u.MilestoneID,
			Title:       u.Title,
			TargetDate:  formatTarget(u.TargetDate),
			Completion:  u.CompletionRate,
			Urgency:     ranked.Urgency,
		})
	}
	return report, nil
}

func formatTarget(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
