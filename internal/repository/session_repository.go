package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// SessionRepository defines persistence access for sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (token, account_id, expires_at)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		session.Token,
		session.AccountID,
		session.ExpiresAt,
	).Scan(&session.CreatedAt)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	const query = `
        SELECT token, account_id, expires_at, created_at
        FROM sessions WHERE token=$1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.AccountID,
		&session.ExpiresAt,
		&session.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// DeleteByToken removes a session row. Deleting a token that no longer
// exists is not an error; logout is idempotent.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token=$1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}

// DeleteExpired reaps sessions past their expiry and reports how many rows
// were removed.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= NOW()`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
