package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type SyncListRepository struct {
	db *sqlx.DB
}

func NewSyncListRepository(db *sqlx.DB) *SyncListRepository {
	return &SyncListRepository{
		db: db,
	}
}

// Save replaces the whole id list in one transaction. Saving a new list
// discards the prior one.
func (r *SyncListRepository) Save(ctx context.Context, ids []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync list tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sync_id_list`); err != nil {
		return fmt.Errorf("clear sync list: %w", err)
	}

	const insert = `INSERT INTO sync_id_list (position, bubble_id) VALUES ($1, $2)`
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, insert, i, id); err != nil {
			return fmt.Errorf("insert sync list entry: %w", err)
		}
	}

	return tx.Commit()
}

// GetIDs returns the saved ids in operator order. Read-only.
func (r *SyncListRepository) GetIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT bubble_id FROM sync_id_list ORDER BY position`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, err
	}
	return ids, nil
}

// Clear drops the saved list
func (r *SyncListRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sync_id_list`)
	return err
}
