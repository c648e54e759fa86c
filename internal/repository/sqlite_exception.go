package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
)

const exceptionColumns = `id, kind, date, start_minute, end_minute, reason, created_at`

// SQLiteExceptionRepo implements ExceptionRepo on a SQLite connection or tx.
type SQLiteExceptionRepo struct {
	db db.DBTX
}

func NewSQLiteExceptionRepo(conn db.DBTX) *SQLiteExceptionRepo {
	return &SQLiteExceptionRepo{db: conn}
}

func (r *SQLiteExceptionRepo) Create(ctx context.Context, e *domain.CalendarException) error {
	query := `INSERT INTO calendar_exceptions (` + exceptionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, string(e.Kind), e.Date.Format(dateLayout),
		e.StartMinute, e.EndMinute, e.Reason,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar exception: %w", err)
	}
	return nil
}

func (r *SQLiteExceptionRepo) List(ctx context.Context) ([]domain.CalendarException, error) {
	query := `SELECT ` + exceptionColumns + ` FROM calendar_exceptions ORDER BY date, start_minute`
	return r.queryExceptions(ctx, query)
}

func (r *SQLiteExceptionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.CalendarException, error) {
	query := `SELECT ` + exceptionColumns + ` FROM calendar_exceptions
		WHERE date >= ? AND date < ? ORDER BY date, start_minute`
	return r.queryExceptions(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
}

func (r *SQLiteExceptionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_exceptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar exception: %w", err)
	}
	return requireAffected(res, "calendar exception")
}

func (r *SQLiteExceptionRepo) queryExceptions(ctx context.Context, query string, args ...any) ([]domain.CalendarException, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing calendar exceptions: %w", err)
	}
	defer rows.Close()

	var out []domain.CalendarException
	for rows.Next() {
		var e domain.CalendarException
		var kind, date, createdAt string
		if err := rows.Scan(&e.ID, &kind, &date, &e.StartMinute, &e.EndMinute, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning calendar exception: %w", err)
		}
		e.Kind = domain.ExceptionKind(kind)
		e.Date = parseTime(date, dateLayout)
		e.CreatedAt = parseTime(createdAt, time.RFC3339)
		out = append(out, e)
	}
	return out, rows.Err()
}
