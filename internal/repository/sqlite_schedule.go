package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
)

// SQLiteScheduleRepo implements ScheduleRepo on a SQLite connection or tx.
// Save should run inside the same transaction as the snapshot read that fed
// the allocator, so a schedule is never partially written.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

func (r *SQLiteScheduleRepo) Save(ctx context.Context, s *domain.WeeklySchedule) error {
	week := s.WeekStart.Format(dateLayout)

	// Replace semantics: a week holds at most one schedule.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE week_start = ?`, week); err != nil {
		return fmt.Errorf("clearing previous schedule: %w", err)
	}

	query := `INSERT INTO schedules (id, week_start, strategy, generated_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, week, string(s.Strategy), s.GeneratedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}

	entryQuery := `INSERT INTO schedule_entries
		(schedule_id, position, day, start_minute, end_minute, subject_id, work_item_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, e := range s.Entries {
		var workItemID any
		if e.WorkItemID != nil {
			workItemID = *e.WorkItemID
		}
		if _, err := r.db.ExecContext(ctx, entryQuery,
			s.ID, i, e.Day, e.StartMinute, e.EndMinute, e.SubjectID, workItemID,
		); err != nil {
			return fmt.Errorf("inserting schedule entry %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByWeek(ctx context.Context, weekStart time.Time) (*domain.WeeklySchedule, error) {
	query := `SELECT id, week_start, strategy, generated_at FROM schedules WHERE week_start = ?`
	row := r.db.QueryRowContext(ctx, query, weekStart.Format(dateLayout))

	var s domain.WeeklySchedule
	var week, strategy, generatedAt string
	if err := row.Scan(&s.ID, &week, &strategy, &generatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}
	s.WeekStart = parseTime(week, dateLayout)
	s.Strategy = domain.PacingStrategy(strategy)
	s.GeneratedAt = parseTime(generatedAt, time.RFC3339)

	entries, err := r.loadEntries(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Entries = entries
	return &s, nil
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	return requireAffected(res, "schedule")
}

func (r *SQLiteScheduleRepo) loadEntries(ctx context.Context, scheduleID string) ([]domain.ScheduleEntry, error) {
	query := `SELECT day, start_minute, end_minute, subject_id, work_item_id
		FROM schedule_entries WHERE schedule_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule entries: %w", err)
	}
	defer rows.Close()

	var out []domain.ScheduleEntry
	for rows.Next() {
		var e domain.ScheduleEntry
		var workItemID sql.NullString
		if err := rows.Scan(&e.Day, &e.StartMinute, &e.EndMinute, &e.SubjectID, &workItemID); err != nil {
			return nil, fmt.Errorf("scanning schedule entry: %w", err)
		}
		if workItemID.Valid {
			id := workItemID.String
			e.WorkItemID = &id
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
