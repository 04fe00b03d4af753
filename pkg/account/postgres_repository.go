package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository backed by the accounts table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accountColumns = `id, name, surname, age, national_id, email, password, active, profile_id, created_at, last_modified_at`

func scanAccount(row pgx.Row) (Account, error) {
	var acct Account
	err := row.Scan(
		&acct.ID,
		&acct.Name,
		&acct.Surname,
		&acct.Age,
		&acct.NationalID,
		&acct.Email,
		&acct.Password,
		&acct.Active,
		&acct.ProfileID,
		&acct.CreatedAt,
		&acct.LastModifiedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("failed to scan account: %w", err)
	}
	return acct, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE LOWER(email) = LOWER($1)`, email)
	return scanAccount(row)
}

func (r *PostgresRepository) FindByNationalID(ctx context.Context, nationalID string) (Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE national_id = $1`, nationalID)
	return scanAccount(row)
}

// Save inserts the account when ID is zero, otherwise updates it.
// Unique-constraint violations on email or national id surface as
// ErrDuplicateKey.
func (r *PostgresRepository) Save(ctx context.Context, acct Account) (Account, error) {
	var row pgx.Row
	if acct.ID == 0 {
		row = r.pool.QueryRow(ctx, `
			INSERT INTO accounts (name, surname, age, national_id, email, password, active, profile_id, created_at, last_modified_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING `+accountColumns,
			acct.Name, acct.Surname, acct.Age, acct.NationalID, acct.Email, acct.Password, acct.Active, acct.ProfileID,
		)
	} else {
		row = r.pool.QueryRow(ctx, `
			UPDATE accounts
			SET name = $2, surname = $3, age = $4, national_id = $5, email = $6, password = $7, active = $8, profile_id = $9, last_modified_at = NOW()
			WHERE id = $1
			RETURNING `+accountColumns,
			acct.ID, acct.Name, acct.Surname, acct.Age, acct.NationalID, acct.Email, acct.Password, acct.Active, acct.ProfileID,
		)
	}
	saved, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Account{}, ErrDuplicateKey
		}
		return Account{}, err
	}
	return saved, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts SET password = $2, last_modified_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}
