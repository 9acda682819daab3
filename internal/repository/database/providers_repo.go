package database

import (
	"context"
	"errors"
	"strings"

	"vas_import/internal/config/connections/postgres"
	"vas_import/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProviderRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewProviderRepo(pg *postgres.Postgres) *ProviderRepo {
	return &ProviderRepo{pg: pg, table: "providers"}
}

func (r *ProviderRepo) GetByName(ctx context.Context, name string) (*models.Provider, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM ` + r.table + `
		WHERE LOWER(name) = LOWER($1)
		LIMIT 1
	`

	var p models.Provider
	err := r.pg.Pool.QueryRow(ctx, query, strings.TrimSpace(name)).Scan(
		&p.ID, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) Create(ctx context.Context, name string) (*models.Provider, error) {
	query := `
		INSERT INTO ` + r.table + ` (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, true, NOW(), NOW())
		RETURNING id, name, is_active, created_at, updated_at
	`

	var p models.Provider
	err := r.pg.Pool.QueryRow(ctx, query, uuid.NewString(), strings.TrimSpace(name)).Scan(
		&p.ID, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetOrCreate resolves a provider by canonical name, creating it on first
// encounter. A concurrent create racing on the name unique constraint is
// resolved by retrying the lookup.
func (r *ProviderRepo) GetOrCreate(ctx context.Context, name string) (*models.Provider, bool, error) {
	p, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if p != nil {
		return p, false, nil
	}

	p, err = r.Create(ctx, name)
	if err != nil {
		if isUniqueViolation(err) {
			p, lerr := r.GetByName(ctx, name)
			if lerr != nil {
				return nil, false, lerr
			}
			if p != nil {
				return p, false, nil
			}
		}
		return nil, false, err
	}
	return p, true, nil
}
