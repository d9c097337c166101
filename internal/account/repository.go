package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for the account module.
type Repository interface {
	Create(ctx context.Context, email, username, passwordHash string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	AddPoints(ctx context.Context, id int64, delta int64) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new account with a zero point balance.
func (r *PGRepository) Create(ctx context.Context, email, username, passwordHash string) (*User, error) {
	const query = `INSERT INTO users (email, username, password)
		VALUES ($1, $2, $3)
		RETURNING id, email, username, password, points, created_at`
	var user User
	err := r.pool.QueryRow(ctx, query, email, username, passwordHash).
		Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.Points, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &user, nil
}

// FindByID fetches an account by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = `SELECT id, email, username, password, points, created_at FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// FindByUsername fetches an account by exact username match.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT id, email, username, password, points, created_at FROM users WHERE username = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, username))
}

// AddPoints applies the delta as a single atomic statement so concurrent
// updates against the same account never lose an increment.
func (r *PGRepository) AddPoints(ctx context.Context, id int64, delta int64) (*User, error) {
	const query = `UPDATE users SET points = points + $1 WHERE id = $2
		RETURNING id, email, username, password, points, created_at`
	return r.scanOne(r.pool.QueryRow(ctx, query, delta, id))
}

func (r *PGRepository) scanOne(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.Points, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
