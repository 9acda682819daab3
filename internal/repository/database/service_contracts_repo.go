package database

import (
	"context"
	"errors"

	"vas_import/internal/config/connections/postgres"
	"vas_import/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ServiceContractRepo links services to the contracts they are billed under.
type ServiceContractRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewServiceContractRepo(pg *postgres.Postgres) *ServiceContractRepo {
	return &ServiceContractRepo{pg: pg, table: "service_contracts"}
}

func (r *ServiceContractRepo) Get(ctx context.Context, serviceID, contractID string) (*models.ServiceContract, error) {
	query := `
		SELECT id, service_id, contract_id, created_at, updated_at
		FROM ` + r.table + `
		WHERE service_id = $1 AND contract_id = $2
		LIMIT 1
	`
	var sc models.ServiceContract
	err := r.pg.Pool.QueryRow(ctx, query, serviceID, contractID).Scan(
		&sc.ID, &sc.ServiceID, &sc.ContractID, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *ServiceContractRepo) Create(ctx context.Context, serviceID, contractID string) (*models.ServiceContract, error) {
	query := `
		INSERT INTO ` + r.table + ` (id, service_id, contract_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, service_id, contract_id, created_at, updated_at
	`
	var sc models.ServiceContract
	err := r.pg.Pool.QueryRow(ctx, query, uuid.NewString(), serviceID, contractID).Scan(
		&sc.ID, &sc.ServiceID, &sc.ContractID, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *ServiceContractRepo) GetOrCreate(ctx context.Context, serviceID, contractID string) (*models.ServiceContract, bool, error) {
	existing, err := r.Get(ctx, serviceID, contractID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created, err := r.Create(ctx, serviceID, contractID)
	if err != nil {
		if isUniqueViolation(err) {
			existing, lerr := r.Get(ctx, serviceID, contractID)
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
