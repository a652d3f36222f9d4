package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"seda-ops/ledgersync/internal/models/entities"
)

type ProblemRepository struct {
	db *sqlx.DB
}

func NewProblemRepository(db *sqlx.DB) *ProblemRepository {
	return &ProblemRepository{
		db: db,
	}
}

// Append records a failed id. One row per failure; the list only shrinks
// by explicit operator action.
func (r *ProblemRepository) Append(ctx context.Context, bubbleID, reason string) error {
	const query = `
		INSERT INTO sync_problem (bubble_id, reason, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := r.db.ExecContext(ctx, query, bubbleID, reason)
	return err
}

// List returns all problem entries, newest first. Read-only.
func (r *ProblemRepository) List(ctx context.Context) ([]entities.ProblemEntry, error) {
	const query = `SELECT * FROM sync_problem ORDER BY created_at DESC`

	var entries []entities.ProblemEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearByBubbleID removes every problem entry for one id
func (r *ProblemRepository) ClearByBubbleID(ctx context.Context, bubbleID string) (int64, error) {
	const query = `DELETE FROM sync_problem WHERE bubble_id = $1`

	res, err := r.db.ExecContext(ctx, query, bubbleID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ClearAll empties the problem list
func (r *ProblemRepository) ClearAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sync_problem`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
