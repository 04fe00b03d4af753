package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository backed by the profiles table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx,
		`SELECT id, description, active FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.Description, &p.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) FindProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, description, active FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Description, &p.Active); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, description string) (Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (description, active) VALUES ($1, TRUE) RETURNING id, description, active`,
		description,
	).Scan(&p.ID, &p.Description, &p.Active)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}
