// Package leaderboard serves the top accounts by point balance, backed by a
// Redis cache in front of the users table.
package leaderboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one leaderboard row. It carries no credential material.
type Entry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
}

// Repository defines read access to ranked accounts.
type Repository interface {
	TopAccounts(ctx context.Context, limit int) ([]Entry, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// TopAccounts returns up to limit accounts ordered by points descending.
// Ties break on id so the ordering is stable across refreshes.
func (r *PGRepository) TopAccounts(ctx context.Context, limit int) ([]Entry, error) {
	const query = `SELECT id, username, points FROM users ORDER BY points DESC, id ASC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Username, &entry.Points); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ Repository = (*PGRepository)(nil)
