package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
)

const timeBlockColumns = `id, subject_id, day, start_minute, end_minute, created_at, updated_at`

// SQLiteTimeBlockRepo implements TimeBlockRepo on a SQLite connection or tx.
type SQLiteTimeBlockRepo struct {
	db db.DBTX
}

func NewSQLiteTimeBlockRepo(conn db.DBTX) *SQLiteTimeBlockRepo {
	return &SQLiteTimeBlockRepo{db: conn}
}

func (r *SQLiteTimeBlockRepo) Create(ctx context.Context, b *domain.TimeBlock) error {
	query := `INSERT INTO time_blocks (` + timeBlockColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.SubjectID, b.Day, b.StartMinute, b.EndMinute,
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time block: %w", err)
	}
	return nil
}

func (r *SQLiteTimeBlockRepo) GetByID(ctx context.Context, id string) (*domain.TimeBlock, error) {
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE id = ?`
	b, err := scanTimeBlock(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLiteTimeBlockRepo) List(ctx context.Context) ([]domain.TimeBlock, error) {
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks ORDER BY day, start_minute`
	return r.queryBlocks(ctx, query)
}

func (r *SQLiteTimeBlockRepo) ListBySubject(ctx context.Context, subjectID string) ([]domain.TimeBlock, error) {
	query := `SELECT ` + timeBlockColumns + ` FROM time_blocks WHERE subject_id = ? ORDER BY day, start_minute`
	return r.queryBlocks(ctx, query, subjectID)
}

func (r *SQLiteTimeBlockRepo) Update(ctx context.Context, b *domain.TimeBlock) error {
	query := `UPDATE time_blocks SET subject_id = ?, day = ?, start_minute = ?, end_minute = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.SubjectID, b.Day, b.StartMinute, b.EndMinute,
		b.UpdatedAt.Format(time.RFC3339), b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating time block: %w", err)
	}
	return requireAffected(res, "time block")
}

func (r *SQLiteTimeBlockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time block: %w", err)
	}
	return requireAffected(res, "time block")
}

func (r *SQLiteTimeBlockRepo) queryBlocks(ctx context.Context, query string, args ...any) ([]domain.TimeBlock, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time blocks: %w", err)
	}
	defer rows.Close()

	var out []domain.TimeBlock
	for rows.Next() {
		b, err := scanTimeBlock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimeBlock(row rowScanner) (*domain.TimeBlock, error) {
	var b domain.TimeBlock
	var createdAt, updatedAt string
	err := row.Scan(&b.ID, &b.SubjectID, &b.Day, &b.StartMinute, &b.EndMinute, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time block: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time block: %w", err)
	}
	b.CreatedAt = parseTime(createdAt, time.RFC3339)
	b.UpdatedAt = parseTime(updatedAt, time.RFC3339)
	return &b, nil
}
