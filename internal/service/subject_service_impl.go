package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/google/uuid"
)

type subjectService struct {
	subjects repository.SubjectRepo
}

func NewSubjectService(subjects repository.SubjectRepo) SubjectService {
	return &subjectService{subjects: subjects}
}

func (s *subjectService) Create(ctx context.Context, subject *domain.Subject) error {
	if subject.Name == "" {
		return fmt.Errorf("subject name is required")
	}
	if subject.ID == "" {
		subject.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	return s.subjects.Create(ctx, subject)
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

func (s *subjectService) List(ctx context.Context) ([]domain.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *subjectService) Update(ctx context.Context, subject *domain.Subject) error {
	if subject.Name == "" {
		return fmt.Errorf("subject name is required")
	}
	subject.UpdatedAt = time.Now().UTC()
	return s.subjects.Update(ctx, subject)
}

func (s *subjectService) Delete(ctx context.Context, id string) error {
	// Blocks and milestones cascade at the database level; verify the
	// subject exists first so callers get ErrNotFound instead of a no-op.
	if _, err := s.subjects.GetByID(ctx, id); err != nil {
		return err
	}
	return s.subjects.Delete(ctx, id)
}
