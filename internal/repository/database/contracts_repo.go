package database

import (
	"context"
	"errors"

	"vas_import/internal/config/connections/postgres"
	"vas_import/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ContractRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewContractRepo(pg *postgres.Postgres) *ContractRepo {
	return &ContractRepo{pg: pg, table: "contracts"}
}

const contractColumns = `
	id, name, contract_number, type, status, start_date, end_date,
	revenue_percentage, description, provider_id, parking_service_id,
	created_by_id, created_at, updated_at
`

func (r *ContractRepo) scan(row pgx.Row) (*models.Contract, error) {
	var c models.Contract
	var providerID, parkingServiceID *string
	err := row.Scan(
		&c.ID, &c.Name, &c.ContractNumber, &c.Type, &c.Status, &c.StartDate, &c.EndDate,
		&c.RevenuePercentage, &c.Description, &providerID, &parkingServiceID,
		&c.CreatedByID, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if providerID != nil {
		c.ProviderID = *providerID
	}
	if parkingServiceID != nil {
		c.ParkingServiceID = *parkingServiceID
	}
	return &c, nil
}

func (r *ContractRepo) GetByProviderAndName(ctx context.Context, providerID, name string) (*models.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM ` + r.table + `
		WHERE provider_id = $1 AND name = $2
		LIMIT 1
	`
	return r.scan(r.pg.Pool.QueryRow(ctx, query, providerID, name))
}

// GetActiveParking returns the active parking contract for a parking service;
// parking files share one auto-generated contract per counterparty.
func (r *ContractRepo) GetActiveParking(ctx context.Context, parkingServiceID string) (*models.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM ` + r.table + `
		WHERE parking_service_id = $1 AND type = $2 AND status = $3
		LIMIT 1
	`
	return r.scan(r.pg.Pool.QueryRow(ctx, query, parkingServiceID, models.ContractTypeParking, models.ContractStatusActive))
}

func (r *ContractRepo) Create(ctx context.Context, c models.Contract) (*models.Contract, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	var providerID, parkingServiceID *string
	if c.ProviderID != "" {
		providerID = &c.ProviderID
	}
	if c.ParkingServiceID != "" {
		parkingServiceID = &c.ParkingServiceID
	}

	query := `
		INSERT INTO ` + r.table + ` (
			id, name, contract_number, type, status, start_date, end_date,
			revenue_percentage, description, provider_id, parking_service_id,
			created_by_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, NOW(), NOW()
		)
		RETURNING ` + contractColumns

	return r.scan(r.pg.Pool.QueryRow(ctx, query,
		c.ID, c.Name, c.ContractNumber, c.Type, c.Status, c.StartDate, c.EndDate,
		c.RevenuePercentage, c.Description, providerID, parkingServiceID,
		c.CreatedByID,
	))
}

// GetOrCreateForProvider resolves the contract for (provider, derived name),
// creating it with the supplied template on first encounter.
func (r *ContractRepo) GetOrCreateForProvider(ctx context.Context, c models.Contract) (*models.Contract, bool, error) {
	existing, err := r.GetByProviderAndName(ctx, c.ProviderID, c.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created, err := r.Create(ctx, c)
	if err != nil {
		if isUniqueViolation(err) {
			existing, lerr := r.GetByProviderAndName(ctx, c.ProviderID, c.Name)
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

func (r *ContractRepo) GetOrCreateForParkingService(ctx context.Context, c models.Contract) (*models.Contract, bool, error) {
	existing, err := r.GetActiveParking(ctx, c.ParkingServiceID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	created, err := r.Create(ctx, c)
	if err != nil {
		if isUniqueViolation(err) {
			existing, lerr := r.GetActiveParking(ctx, c.ParkingServiceID)
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
