package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tolgauslu/authgate"
)

const uniqueViolationCode = "23505"

// Postgres stores user records in a PostgreSQL table backed by a pgx
// connection pool. The pool is owned by the caller.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the users table if it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("userstore: ensure schema: %w", err)
	}
	return nil
}

// FindByEmail implements [authgate.UserStore].
func (p *Postgres) FindByEmail(ctx context.Context, email string) (authgate.UserRecord, error) {
	var user authgate.UserRecord
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authgate.UserRecord{}, authgate.ErrUserNotFound
		}
		return authgate.UserRecord{}, fmt.Errorf("userstore: find by email: %w", err)
	}
	return user, nil
}

// FindByID implements [authgate.UserStore].
func (p *Postgres) FindByID(ctx context.Context, id string) (authgate.UserRecord, error) {
	var user authgate.UserRecord
	err := p.pool.QueryRow(ctx,
		`SELECT id, email, password_hash FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authgate.UserRecord{}, authgate.ErrUserNotFound
		}
		return authgate.UserRecord{}, fmt.Errorf("userstore: find by id: %w", err)
	}
	return user, nil
}

// Create implements [authgate.UserStore]. A unique-constraint violation on
// the email column maps to [authgate.ErrEmailExists] so concurrent
// registrations resolve to a single winner.
func (p *Postgres) Create(ctx context.Context, email, passwordHash string) (authgate.UserRecord, error) {
	user := authgate.UserRecord{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		user.ID, user.Email, user.PasswordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return authgate.UserRecord{}, authgate.ErrEmailExists
		}
		return authgate.UserRecord{}, fmt.Errorf("userstore: create: %w", err)
	}
	return user, nil
}
