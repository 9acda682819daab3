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

type ParkingServiceRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewParkingServiceRepo(pg *postgres.Postgres) *ParkingServiceRepo {
	return &ParkingServiceRepo{pg: pg, table: "parking_services"}
}

func (r *ParkingServiceRepo) GetByName(ctx context.Context, name string) (*models.ParkingService, error) {
	query := `
		SELECT id, name, is_active, created_by_id, created_at, updated_at
		FROM ` + r.table + `
		WHERE LOWER(name) = LOWER($1)
		LIMIT 1
	`

	var ps models.ParkingService
	err := r.pg.Pool.QueryRow(ctx, query, strings.TrimSpace(name)).Scan(
		&ps.ID, &ps.Name, &ps.IsActive, &ps.CreatedByID, &ps.CreatedAt, &ps.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *ParkingServiceRepo) Create(ctx context.Context, name, createdByID string) (*models.ParkingService, error) {
	query := `
		INSERT INTO ` + r.table + ` (id, name, is_active, created_by_id, created_at, updated_at)
		VALUES ($1, $2, true, $3, NOW(), NOW())
		RETURNING id, name, is_active, created_by_id, created_at, updated_at
	`

	var ps models.ParkingService
	err := r.pg.Pool.QueryRow(ctx, query, uuid.NewString(), strings.TrimSpace(name), createdByID).Scan(
		&ps.ID, &ps.Name, &ps.IsActive, &ps.CreatedByID, &ps.CreatedAt, &ps.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *ParkingServiceRepo) GetOrCreate(ctx context.Context, name, createdByID string) (*models.ParkingService, bool, error) {
	ps, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if ps != nil {
		return ps, false, nil
	}

	ps, err = r.Create(ctx, name, createdByID)
	if err != nil {
		if isUniqueViolation(err) {
			ps, lerr := r.GetByName(ctx, name)
			if lerr != nil {
				return nil, false, lerr
			}
			if ps != nil {
				return ps, false, nil
			}
		}
		return nil, false, err
	}
	return ps, true, nil
}
