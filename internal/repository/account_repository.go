package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riadov001/Myjantesappv2/internal/domain"
)

// uniqueViolation is the Postgres error code raised when an insert breaks a
// unique index. Concurrent registrations with the same email race to this
// constraint; the loser observes domain.ErrEmailTaken.
const uniqueViolation = "23505"

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByProviderSubject(ctx context.Context, provider domain.AuthProvider, subjectID string) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, email, password_hash, name, avatar_url, auth_provider, provider_subject_id, role, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (id, email, password_hash, name, avatar_url, auth_provider, provider_subject_id, role)
        VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Name,
		account.AvatarURL,
		account.AuthProvider,
		account.ProviderSubjectID,
		account.Role,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts
        SET name=$1, avatar_url=$2, auth_provider=$3, provider_subject_id=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		account.Name,
		account.AvatarURL,
		account.AuthProvider,
		account.ProviderSubjectID,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE email=lower($1)`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *accountRepository) GetByProviderSubject(ctx context.Context, provider domain.AuthProvider, subjectID string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE auth_provider=$1 AND provider_subject_id=$2`
	return r.scanOne(r.pool.QueryRow(ctx, query, provider, subjectID))
}

func (r *accountRepository) scanOne(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Name,
		&account.AvatarURL,
		&account.AuthProvider,
		&account.ProviderSubjectID,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
