package service

import (
	"context"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/google/uuid"
)

type timetableService struct {
	blocks   repository.TimeBlockRepo
	subjects repository.SubjectRepo
}

func NewTimetableService(blocks repository.TimeBlockRepo, subjects repository.SubjectRepo) TimetableService {
	return &timetableService{blocks: blocks, subjects: subjects}
}

func (s *timetableService) AddBlock(ctx context.Context, b *domain.TimeBlock) error {
	if err := validateDay(b.Day); err != nil {
		return err
	}
	if err := validateMinuteRange(b.StartMinute, b.EndMinute); err != nil {
		return err
	}
	if _, err := s.subjects.GetByID(ctx, b.SubjectID); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.blocks.Create(ctx, b)
}

func (s *timetableService) ListBlocks(ctx context.Context) ([]domain.TimeBlock, error) {
	return s.blocks.List(ctx)
}

func (s *timetableService) ListBlocksBySubject(ctx context.Context, subjectID string) ([]domain.TimeBlock, error) {
	return s.blocks.ListBySubject(ctx, subjectID)
}

func (s *timetableService) UpdateBlock(ctx context.Context, b *domain.TimeBlock) error {
	if err := validateDay(b.Day); err != nil {
		return err
	}
	if err := validateMinuteRange(b.StartMinute, b.EndMinute); err != nil {
		return err
	}
	b.UpdatedAt = time.Now().UTC()
	return s.blocks.Update(ctx, b)
}

func (s *timetableService) RemoveBlock(ctx context.Context, id string) error {
	return s.blocks.Delete(ctx, id)
}
