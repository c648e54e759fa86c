package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
)

const unitColumns = `id, milestone_id, title, target_date, completion_rate, created_at, updated_at`

// SQLiteUnitRepo implements UnitRepo on a SQLite connection or tx.
type SQLiteUnitRepo struct {
	db db.DBTX
}

func NewSQLiteUnitRepo(conn db.DBTX) *SQLiteUnitRepo {
	return &SQLiteUnitRepo{db: conn}
}

func (r *SQLiteUnitRepo) Create(ctx context.Context, u *domain.Unit) error {
	query := `INSERT INTO units (` + unitColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.MilestoneID, u.Title,
		nullableTimeToString(u.TargetDate, dateLayout),
		u.CompletionRate,
		u.CreatedAt.Format(time.RFC3339),
		u.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting unit: %w", err)
	}
	return nil
}

func (r *SQLiteUnitRepo) List(ctx context.Context) ([]domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY created_at`
	return r.queryUnits(ctx, query)
}

func (r *SQLiteUnitRepo) ListByMilestone(ctx context.Context, milestoneID string) ([]domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE milestone_id = ? ORDER BY created_at`
	return r.queryUnits(ctx, query, milestoneID)
}

func (r *SQLiteUnitRepo) Update(ctx context.Context, u *domain.Unit) error {
	query := `UPDATE units SET title = ?, target_date = ?, completion_rate = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Title,
		nullableTimeToString(u.TargetDate, dateLayout),
		u.CompletionRate,
		u.UpdatedAt.Format(time.RFC3339),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating unit: %w", err)
	}
	return requireAffected(res, "unit")
}

func (r *SQLiteUnitRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting unit: %w", err)
	}
	return requireAffected(res, "unit")
}

func (r *SQLiteUnitRepo) queryUnits(ctx context.Context, query string, args ...any) ([]domain.Unit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer rows.Close()

	var out []domain.Unit
	for rows.Next() {
		var u domain.Unit
		var targetDate sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&u.ID, &u.MilestoneID, &u.Title, &targetDate, &u.CompletionRate, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}
		u.TargetDate = parseNullableTime(targetDate, dateLayout)
		u.CreatedAt = parseTime(createdAt, time.RFC3339)
		u.UpdatedAt = parseTime(updatedAt, time.RFC3339)
		out = append(out, u)
	}
	return out, rows.Err()
}
