package service

import (
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/repository"
)

// repos bundles repositories built over one DBTX, so a use case can run all
// of its reads and writes against the same connection or transaction.
type repos struct {
	subjects   repository.SubjectRepo
	blocks     repository.TimeBlockRepo
	exceptions repository.ExceptionRepo
	milestones repository.MilestoneRepo
	units      repository.UnitRepo
	workItems  repository.WorkItemRepo
	seqs       repository.SequenceRepo
	schedules  repository.ScheduleRepo
}

func newRepos(conn db.DBTX) repos {
	return repos{
		subjects:   repository.NewSQLiteSubjectRepo(conn),
		blocks:     repository.NewSQLiteTimeBlockRepo(conn),
		exceptions: repository.NewSQLiteExceptionRepo(conn),
		milestones: repository.NewSQLiteMilestoneRepo(conn),
		units:      repository.NewSQLiteUnitRepo(conn),
		workItems:  repository.NewSQLiteWorkItemRepo(conn),
		seqs:       repository.NewSQLiteSequenceRepo(conn),
		schedules:  repository.NewSQLiteScheduleRepo(conn),
	}
}

// WeekStartOf returns the Monday 00:00 UTC of the week containing t.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// completionRate derives a milestone completion ratio from item counts.
func completionRate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

func validateMinuteRange(start, end int) error {
	if start < 0 || end <= start {
		return fmt.Errorf("invalid minute range %d-%d", start, end)
	}
	return nil
}

func validateDay(day int) error {
	if day < 0 || day >= domain.DaysPerWeek {
		return fmt.Errorf("day must be 0-%d (Monday-Friday), got %d", domain.DaysPerWeek-1, day)
	}
	return nil
}

func validateCompletion(rate float64) error {
	if rate < 0 || rate > 1 {
		return fmt.Errorf("completion rate must be within [0, 1], got %v", rate)
	}
	return nil
}

func resolveNow(now *time.Time) time.Time {
	if now != nil {
		return now.UTC()
	}
	return time.Now().UTC()
}
