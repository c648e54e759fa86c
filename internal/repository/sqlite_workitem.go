package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
)

const workItemColumns = `id, milestone_id, subject_id, title, type, tags, status, seq, created_at, updated_at`

// SQLiteWorkItemRepo implements WorkItemRepo on a SQLite connection or tx.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

func NewSQLiteWorkItemRepo(conn db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: conn}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (` + workItemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.MilestoneID, w.SubjectID, w.Title, w.Type,
		joinTags(w.Tags), string(w.Status), w.Seq,
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	return scanWorkItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteWorkItemRepo) ListBacklog(ctx context.Context) ([]domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE status = 'todo' ORDER BY seq`
	return r.queryWorkItems(ctx, query)
}

func (r *SQLiteWorkItemRepo) ListByMilestone(ctx context.Context, milestoneID string) ([]domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE milestone_id = ? ORDER BY seq`
	return r.queryWorkItems(ctx, query, milestoneID)
}

func (r *SQLiteWorkItemRepo) CountByMilestone(ctx context.Context, milestoneID string) (done, total int, err error) {
	query := `SELECT
		COUNT(CASE WHEN status = 'done' THEN 1 END),
		COUNT(*)
		FROM work_items WHERE milestone_id = ? AND status != 'archived'`
	if err := r.db.QueryRowContext(ctx, query, milestoneID).Scan(&done, &total); err != nil {
		return 0, 0, fmt.Errorf("counting work items: %w", err)
	}
	return done, total, nil
}

func (r *SQLiteWorkItemRepo) Update(ctx context.Context, w *domain.WorkItem) error {
	query := `UPDATE work_items
		SET milestone_id = ?, subject_id = ?, title = ?, type = ?, tags = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.MilestoneID, w.SubjectID, w.Title, w.Type,
		joinTags(w.Tags), string(w.Status),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	return requireAffected(res, "work item")
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	return requireAffected(res, "work item")
}

func (r *SQLiteWorkItemRepo) queryWorkItems(ctx context.Context, query string, args ...any) ([]domain.WorkItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work items: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func scanWorkItem(row rowScanner) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var tags, status, createdAt, updatedAt string
	err := row.Scan(&w.ID, &w.MilestoneID, &w.SubjectID, &w.Title, &w.Type, &tags, &status, &w.Seq, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}
	w.Tags = splitTags(tags)
	w.Status = domain.WorkItemStatus(status)
	w.CreatedAt = parseTime(createdAt, time.RFC3339)
	w.UpdatedAt = parseTime(updatedAt, time.RFC3339)
	return &w, nil
}
