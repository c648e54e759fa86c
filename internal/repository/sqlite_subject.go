package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/db"
	"github.com/avdelgado/paideia/internal/domain"
)

// SQLiteSubjectRepo implements SubjectRepo on a SQLite connection or tx.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(conn db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: conn}
}

func (r *SQLiteSubjectRepo) Create(ctx context.Context, s *domain.Subject) error {
	query := `INSERT INTO subjects (id, name, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Color,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	query := `SELECT id, name, color, created_at, updated_at FROM subjects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s domain.Subject
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.Name, &s.Color, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subject: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	s.CreatedAt = parseTime(createdAt, time.RFC3339)
	s.UpdatedAt = parseTime(updatedAt, time.RFC3339)
	return &s, nil
}

func (r *SQLiteSubjectRepo) List(ctx context.Context) ([]domain.Subject, error) {
	query := `SELECT id, name, color, created_at, updated_at FROM subjects ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var out []domain.Subject
	for rows.Next() {
		var s domain.Subject
		var createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		s.CreatedAt = parseTime(createdAt, time.RFC3339)
		s.UpdatedAt = parseTime(updatedAt, time.RFC3339)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, s *domain.Subject) error {
	query := `UPDATE subjects SET name = ?, color = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.Color, s.UpdatedAt.Format(time.RFC3339), s.ID)
	if err != nil {
		return fmt.Errorf("updating subject: %w", err)
	}
	return requireAffected(res, "subject")
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return requireAffected(res, "subject")
}

// requireAffected converts a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
