package database

import (
	"context"
	"errors"

	"vas_import/internal/config/connections/postgres"
	"vas_import/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VasServiceRepo stores monthly postpaid statement rows.
type VasServiceRepo struct {
	pg    *postgres.Postgres
	table string
}

func NewVasServiceRepo(pg *postgres.Postgres) *VasServiceRepo {
	return &VasServiceRepo{pg: pg, table: "vas_services"}
}

func (r *VasServiceRepo) findInTx(ctx context.Context, tx pgx.Tx, e models.VasServiceEntry) (string, error) {
	query := `
		SELECT id
		FROM ` + r.table + `
		WHERE product = $1 AND service_month = $2 AND provider_id = $3
		LIMIT 1
	`
	var id string
	err := tx.QueryRow(ctx, query, e.Product, e.ServiceMonth, e.ProviderID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *VasServiceRepo) insertInTx(ctx context.Context, tx pgx.Tx, e models.VasServiceEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `
		INSERT INTO ` + r.table + ` (
			id, product, service_month, unit_price, transaction_count,
			invoiced_amount, invoiced_corrected, collected_amount, collected_cumulative,
			uncollected_amount, uncollected_corrected, reversed_amount,
			cancelled_amount, cancelled_cumulative, transfer_amount,
			service_id, provider_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15,
			$16, $17, NOW(), NOW()
		)
	`
	_, err := tx.Exec(ctx, query,
		e.ID, e.Product, e.ServiceMonth, e.UnitPrice, e.TransactionCount,
		e.InvoicedAmount, e.InvoicedCorrected, e.CollectedAmount, e.CollectedCumulative,
		e.UncollectedAmount, e.UncollectedCorrected, e.ReversedAmount,
		e.CancelledAmount, e.CancelledCumulative, e.TransferAmount,
		e.ServiceID, e.ProviderID,
	)
	return err
}

func (r *VasServiceRepo) updateInTx(ctx context.Context, tx pgx.Tx, id string, e models.VasServiceEntry) error {
	query := `
		UPDATE ` + r.table + `
		SET unit_price = $2, transaction_count = $3,
		    invoiced_amount = $4, invoiced_corrected = $5,
		    collected_amount = $6, collected_cumulative = $7,
		    uncollected_amount = $8, uncollected_corrected = $9,
		    reversed_amount = $10, cancelled_amount = $11, cancelled_cumulative = $12,
		    transfer_amount = $13, service_id = $14, updated_at = NOW()
		WHERE id = $1
	`
	_, err := tx.Exec(ctx, query,
		id, e.UnitPrice, e.TransactionCount,
		e.InvoicedAmount, e.InvoicedCorrected,
		e.CollectedAmount, e.CollectedCumulative,
		e.UncollectedAmount, e.UncollectedCorrected,
		e.ReversedAmount, e.CancelledAmount, e.CancelledCumulative,
		e.TransferAmount, e.ServiceID,
	)
	return err
}

// UpsertBatch writes one statement file's rows in a single transaction so a
// mid-file failure leaves no partial month behind. Returns inserted and
// updated counts.
func (r *VasServiceRepo) UpsertBatch(ctx context.Context, entries []models.VasServiceEntry) (int, int, error) {
	tx, err := r.pg.Pool.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback(ctx)

	var inserted, updated int
	for _, e := range entries {
		id, err := r.findInTx(ctx, tx, e)
		if err != nil {
			return 0, 0, err
		}
		if id != "" {
			if err := r.updateInTx(ctx, tx, id, e); err != nil {
				return 0, 0, err
			}
			updated++
			continue
		}
		if err := r.insertInTx(ctx, tx, e); err != nil {
			return 0, 0, err
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}
