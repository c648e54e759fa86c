package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/google/uuid"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	units      repository.UnitRepo
	subjects   repository.SubjectRepo
}

func NewMilestoneService(milestones repository.MilestoneRepo, units repository.UnitRepo, subjects repository.SubjectRepo) MilestoneService {
	return &milestoneService{milestones: milestones, units: units, subjects: subjects}
}

func (s *milestoneService) Create(ctx context.Context, m *domain.Milestone) error {
	if m.Title == "" {
		return fmt.Errorf("milestone title is required")
	}
	if err := validateCompletion(m.CompletionRate); err != nil {
		return err
	}
	if _, err := s.subjects.GetByID(ctx, m.SubjectID); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.milestones.Create(ctx, m)
}

func (s *milestoneService) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

func (s *milestoneService) List(ctx context.Context) ([]domain.Milestone, error) {
	return s.milestones.List(ctx)
}

func (s *milestoneService) ListBySubject(ctx context.Context, subjectID string) ([]domain.Milestone, error) {
	return s.milestones.ListBySubject(ctx, subjectID)
}

func (s *milestoneService) Update(ctx context.Context, m *domain.Milestone) error {
	if err := validateCompletion(m.CompletionRate); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	return s.milestones.Update(ctx, m)
}

func (s *milestoneService) Delete(ctx context.Context, id string) error {
	if _, err := s.milestones.GetByID(ctx, id); err != nil {
		return err
	}
	return s.milestones.Delete(ctx, id)
}

func (s *milestoneService) AddUnit(ctx context.Context, u *domain.Unit) error {
	if u.Title == "" {
		return fmt.Errorf("unit title is required")
	}
	if err := validateCompletion(u.CompletionRate); err != nil {
		return err
	}
	if _, err := s.milestones.GetByID(ctx, u.MilestoneID); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.units.Create(ctx, u)
}

func (s *milestoneService) ListUnits(ctx context.Context, milestoneID string) ([]domain.Unit, error) {
	return s.units.ListByMilestone(ctx, milestoneID)
}

func (s *milestoneService) UpdateUnit(ctx context.Context, u *domain.Unit) error {
	if err := validateCompletion(u.CompletionRate); err != nil {
		return err
	}
	u.UpdatedAt = time.Now().UTC()
	return s.units.Update(ctx, u)
}

func (s *milestoneService) DeleteUnit(ctx context.Context, id string) error {
	return s.units.Delete(ctx, id)
}
