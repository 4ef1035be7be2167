package snapshots

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo stores snapshot metadata in the resume_snapshots table.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a snapshot row.
func (r *PGRepo) Create(ctx context.Context, s Snapshot) error {
	const query = `
INSERT INTO resume_snapshots (id, label, storage_key, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.Label, s.StorageKey, s.SizeBytes, s.CreatedAt)
	return err
}

// GetByID returns the snapshot with id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Snapshot, error) {
	const query = `
SELECT id, label, storage_key, size_bytes, created_at
FROM resume_snapshots
WHERE id = $1`
	var s Snapshot
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Label, &s.StorageKey, &s.SizeBytes, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	return s, nil
}

// List returns snapshots newest first. A zero limit means no limit.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Snapshot, error) {
	const query = `
SELECT id, label, storage_key, size_bytes, created_at
FROM resume_snapshots
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`
	if offset < 0 {
		offset = 0
	}
	var lim sql.NullInt64
	if limit > 0 {
		lim = sql.NullInt64{Int64: int64(limit), Valid: true}
	}

	rows, err := r.DB.QueryContext(ctx, query, lim, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Label, &s.StorageKey, &s.SizeBytes, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes the snapshot row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_snapshots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
