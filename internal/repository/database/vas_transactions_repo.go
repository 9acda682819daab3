package database

import (
	"context"
	"errors"

	"vas_import/internal/config/connections/postgres"
	"vas_import/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VasTransactionRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewVasTransactionRepo(pg *postgres.Postgres) *VasTransactionRepo {
	return &VasTransactionRepo{pg: pg, table: "vas_transactions"}
}

func (r *VasTransactionRepo) FindByNaturalKey(ctx context.Context, providerID string, t models.VasTransaction) (*models.VasTransaction, error) {
	query := `
		SELECT id, provider_id, service_id, date, "group", service_name, service_code,
		       price, quantity, amount, created_at, updated_at
		FROM ` + r.table + `
		WHERE provider_id = $1 AND date = $2 AND service_name = $3 AND "group" = $4
		LIMIT 1
	`
	var tx models.VasTransaction
	err := r.pg.Pool.QueryRow(ctx, query, providerID, t.Date, t.ServiceName, t.Group).Scan(
		&tx.ID, &tx.ProviderID, &tx.ServiceID, &tx.Date, &tx.Group, &tx.ServiceName, &tx.ServiceCode,
		&tx.Price, &tx.Quantity, &tx.Amount, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *VasTransactionRepo) Insert(ctx context.Context, t models.VasTransaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO ` + r.table + ` (
			id, provider_id, service_id, date, "group", service_name, service_code,
			price, quantity, amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.pg.Pool.Exec(ctx, query,
		t.ID, t.ProviderID, t.ServiceID, t.Date, t.Group, t.ServiceName, t.ServiceCode,
		t.Price, t.Quantity, t.Amount,
	)
	return err
}

func (r *VasTransactionRepo) Update(ctx context.Context, id string, t models.VasTransaction) error {
	query := `
		UPDATE ` + r.table + `
		SET price = $2, quantity = $3, amount = $4, service_id = $5, service_code = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pg.Pool.Exec(ctx, query, id, t.Price, t.Quantity, t.Amount, t.ServiceID, t.ServiceCode)
	return err
}

// Upsert writes a reconciled fact row by natural key. Returns true when a new
// row was inserted, false when an existing one was refreshed in place.
func (r *VasTransactionRepo) Upsert(ctx context.Context, t models.VasTransaction) (bool, error) {
	existing, err := r.FindByNaturalKey(ctx, t.ProviderID, t)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, r.Update(ctx, existing.ID, t)
	}

	err = r.Insert(ctx, t)
	if err != nil {
		if isUniqueViolation(err) {
			existing, lerr := r.FindByNaturalKey(ctx, t.ProviderID, t)
			if lerr != nil {
				return false, lerr
			}
			if existing != nil {
				return false, r.Update(ctx, existing.ID, t)
			}
		}
		return false, err
	}
	return true, nil
}
