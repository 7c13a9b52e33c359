package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmacy-emr/inventory/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const assignmentCols = `id, facility_id, drug_id, batch_no, quantity_assigned,
	quantity_remaining, expiry_date, assigned_by, assigned_at`

// fkViolation is the PostgreSQL error code for foreign key violations,
// raised when the ledger insert references a facility that does not exist.
const fkViolation = "23503"

func (r *repoPG) Allocate(ctx context.Context, req Request) (*Assignment, int64, error) {
	var a Assignment
	var remaining int64

	err := db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		tx := db.TxFromContext(ctx)

		// Row lock: serializes allocations per batch. Allocations against
		// other batches and plain reads proceed unblocked.
		var available int64
		err := tx.QueryRow(ctx,
			`SELECT quantity FROM drugs WHERE id = $1 FOR UPDATE`,
			req.DrugID).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: drug id %d", ErrNotFound, req.DrugID)
		}
		if err != nil {
			return err
		}

		if available < req.QuantityAssigned {
			return fmt.Errorf("%w: requested %d, available %d",
				ErrInsufficientStock, req.QuantityAssigned, available)
		}

		if err := tx.QueryRow(ctx,
			`UPDATE drugs SET quantity = quantity - $1 WHERE id = $2 RETURNING quantity`,
			req.QuantityAssigned, req.DrugID).Scan(&remaining); err != nil {
			return err
		}

		// quantity_remaining starts equal to quantity_assigned.
		err = tx.QueryRow(ctx, `
			INSERT INTO stock
				(facility_id, drug_id, batch_no, quantity_assigned, quantity_remaining, expiry_date, assigned_by, assigned_at)
			VALUES
				($1, $2, $3, $4, $4, $5, $6, CURRENT_TIMESTAMP)
			RETURNING `+assignmentCols,
			req.FacilityID, req.DrugID, req.BatchNo, req.QuantityAssigned,
			req.ExpiryDate, req.AssignedBy).
			Scan(&a.ID, &a.FacilityID, &a.DrugID, &a.BatchNo, &a.QuantityAssigned,
				&a.QuantityRemaining, &a.ExpiryDate, &a.AssignedBy, &a.AssignedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
				return fmt.Errorf("%w: facility id %d", ErrNotFound, req.FacilityID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &a, remaining, nil
}

func (r *repoPG) ListRecent(ctx context.Context, limit int) ([]*AssignmentView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.facility_id, s.drug_id, s.batch_no, s.quantity_assigned,
			s.quantity_remaining, s.expiry_date, s.assigned_by, s.assigned_at,
			f.name AS facility_name, d.name AS drug_name, d.batch_id AS drug_batch_id
		FROM stock s
		LEFT JOIN facilities f ON f.id = s.facility_id
		LEFT JOIN drugs d ON d.id = s.drug_id
		ORDER BY s.assigned_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*AssignmentView
	for rows.Next() {
		var v AssignmentView
		if err := rows.Scan(&v.ID, &v.FacilityID, &v.DrugID, &v.BatchNo, &v.QuantityAssigned,
			&v.QuantityRemaining, &v.ExpiryDate, &v.AssignedBy, &v.AssignedAt,
			&v.FacilityName, &v.DrugName, &v.DrugBatchID); err != nil {
			return nil, err
		}
		items = append(items, &v)
	}
	return items, rows.Err()
}
