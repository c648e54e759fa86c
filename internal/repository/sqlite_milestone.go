package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
)

const milestoneColumns = `id, subject_id, title, target_date, completion_rate, created_at, updated_at`

// SQLiteMilestoneRepo implements MilestoneRepo on a SQLite connection or tx.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.SubjectID, m.Title,
		nullableTimeToString(m.TargetDate, dateLayout),
		m.CompletionRate,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE id = ?`
	return scanMilestone(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMilestoneRepo) List(ctx context.Context) ([]domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones ORDER BY created_at`
	return r.queryMilestones(ctx, query)
}

func (r *SQLiteMilestoneRepo) ListBySubject(ctx context.Context, subjectID string) ([]domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE subject_id = ? ORDER BY created_at`
	return r.queryMilestones(ctx, query, subjectID)
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones
		SET subject_id = ?, title = ?, target_date = ?, completion_rate = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.SubjectID, m.Title,
		nullableTimeToString(m.TargetDate, dateLayout),
		m.CompletionRate,
		m.UpdatedAt.Format(time.RFC3339),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	return requireAffected(res, "milestone")
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return requireAffected(res, "milestone")
}

func (r *SQLiteMilestoneRepo) queryMilestones(ctx context.Context, query string, args ...any) ([]domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func scanMilestone(row rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var targetDate sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&m.ID, &m.SubjectID, &m.Title, &targetDate, &m.CompletionRate, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("milestone: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	m.TargetDate = parseNullableTime(targetDate, dateLayout)
	m.CreatedAt = parseTime(createdAt, time.RFC3339)
	m.UpdatedAt = parseTime(updatedAt, time.RFC3339)
	return &m, nil
}
