package repository

import (
	"context"
	"fmt"

	"github.com/avdelgado/paideia/internal/db"
)

// SQLiteSequenceRepo allocates work-item creation-order keys atomically from
// the work_item_sequence table. The key is assigned exactly once at creation
// and never re-derived, so tie-breaking in the allocator stays deterministic.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// NextSeq returns the next creation-order value. Allocation is atomic and
// safe under concurrent writes.
func (r *SQLiteSequenceRepo) NextSeq(ctx context.Context) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO work_item_sequence (id, next_seq)
		SELECT 1, COALESCE(MAX(seq), 0) + 1 FROM work_items`
	if _, err := r.db.ExecContext(ctx, seedQuery); err != nil {
		return 0, fmt.Errorf("seeding work item sequence: %w", err)
	}

	var next int
	allocQuery := `UPDATE work_item_sequence
		SET next_seq = next_seq + 1
		WHERE id = 1
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next work item seq: %w", err)
	}

	return next, nil
}
