package database

import (
	"context"
	"errors"

	"vas_import/internal/config/connections/postgres"
	"vas_import/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ParkingTransactionRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewParkingTransactionRepo(pg *postgres.Postgres) *ParkingTransactionRepo {
	return &ParkingTransactionRepo{pg: pg, table: "parking_transactions"}
}

func (r *ParkingTransactionRepo) FindByNaturalKey(ctx context.Context, parkingServiceID string, t models.ParkingTransaction) (*models.ParkingTransaction, error) {
	query := `
		SELECT id, parking_service_id, service_id, date, "group", service_name,
		       price, quantity, amount, created_at, updated_at
		FROM ` + r.table + `
		WHERE parking_service_id = $1 AND date = $2 AND service_name = $3 AND "group" = $4
		LIMIT 1
	`
	var tx models.ParkingTransaction
	err := r.pg.Pool.QueryRow(ctx, query, parkingServiceID, t.Date, t.ServiceName, t.Group).Scan(
		&tx.ID, &tx.ParkingServiceID, &tx.ServiceID, &tx.Date, &tx.Group, &tx.ServiceName,
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

func (r *ParkingTransactionRepo) Insert(ctx context.Context, t models.ParkingTransaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO ` + r.table + ` (
			id, parking_service_id, service_id, date, "group", service_name,
			price, quantity, amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.pg.Pool.Exec(ctx, query,
		t.ID, t.ParkingServiceID, t.ServiceID, t.Date, t.Group, t.ServiceName,
		t.Price, t.Quantity, t.Amount,
	)
	return err
}

func (r *ParkingTransactionRepo) Update(ctx context.Context, id string, t models.ParkingTransaction) error {
	query := `
		UPDATE ` + r.table + `
		SET price = $2, quantity = $3, amount = $4, service_id = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pg.Pool.Exec(ctx, query, id, t.Price, t.Quantity, t.Amount, t.ServiceID)
	return err
}

func (r *ParkingTransactionRepo) Upsert(ctx context.Context, t models.ParkingTransaction) (bool, error) {
	existing, err := r.FindByNaturalKey(ctx, t.ParkingServiceID, t)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, r.Update(ctx, existing.ID, t)
	}

	err = r.Insert(ctx, t)
	if err != nil {
		if isUniqueViolation(err) {
			existing, lerr := r.FindByNaturalKey(ctx, t.ParkingServiceID, t)
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
