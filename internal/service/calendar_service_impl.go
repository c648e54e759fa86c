package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
	"github.com/google/uuid"
)

type calendarService struct {
	exceptions repository.ExceptionRepo
}

func NewCalendarService(exceptions repository.ExceptionRepo) CalendarService {
	return &calendarService{exceptions: exceptions}
}

func (s *calendarService) AddException(ctx context.Context, e *domain.CalendarException) error {
	switch e.Kind {
	case domain.ExceptionWholeDay:
		e.StartMinute = 0
		e.EndMinute = 0
	case domain.ExceptionPartial:
		if err := validateMinuteRange(e.StartMinute, e.EndMinute); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown exception kind %q", e.Kind)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Date = time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
	e.CreatedAt = time.Now().UTC()
	return s.exceptions.Create(ctx, e)
}

func (s *calendarService) ListExceptions(ctx context.Context) ([]domain.CalendarException, error) {
	return s.exceptions.List(ctx)
}

func (s *calendarService) ListWeek(ctx context.Context, weekStart time.Time) ([]domain.CalendarException, error) {
	return s.exceptions.ListBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7))
}

func (s *calendarService) RemoveException(ctx context.Context, id string) error {
	return s.exceptions.Delete(ctx, id)
}
