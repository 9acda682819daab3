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

type ServiceRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewServiceRepo(pg *postgres.Postgres) *ServiceRepo {
	return &ServiceRepo{pg: pg, table: "services"}
}

func (r *ServiceRepo) GetByName(ctx context.Context, name string) (*models.Service, error) {
	query := `
		SELECT id, name, type, billing_type, description, is_active, created_at, updated_at
		FROM ` + r.table + `
		WHERE name = $1
		LIMIT 1
	`

	var s models.Service
	err := r.pg.Pool.QueryRow(ctx, query, strings.TrimSpace(name)).Scan(
		&s.ID, &s.Name, &s.Type, &s.BillingType, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepo) Create(ctx context.Context, s models.Service) (*models.Service, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO ` + r.table + ` (id, name, type, billing_type, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
		RETURNING id, name, type, billing_type, description, is_active, created_at, updated_at
	`

	var out models.Service
	err := r.pg.Pool.QueryRow(ctx, query,
		s.ID, strings.TrimSpace(s.Name), s.Type, s.BillingType, s.Description,
	).Scan(
		&out.ID, &out.Name, &out.Type, &out.BillingType, &out.Description, &out.IsActive, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ServiceRepo) GetOrCreate(ctx context.Context, s models.Service) (*models.Service, bool, error) {
	existing, err := r.GetByName(ctx, s.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created, err := r.Create(ctx, s)
	if err != nil {
		if isUniqueViolation(err) {
			existing, lerr := r.GetByName(ctx, s.Name)
			if lerr != nil {
				return nil, false, lerr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return created, true, nil
}
