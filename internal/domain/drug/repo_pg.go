package drug

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmacy-emr/inventory/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const batchCols = `id, name, strength, batch_id, quantity, expiry_date, created_at`

func scanBatch(row pgx.Row) (*Batch, error) {
	var b Batch
	err := row.Scan(&b.ID, &b.Name, &b.Strength, &b.BatchLabel, &b.Quantity, &b.ExpiryDate, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &b, err
}

func scanBatches(rows pgx.Rows) ([]*Batch, error) {
	defer rows.Close()
	var items []*Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, b *Batch) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO drugs (name, strength, batch_id, quantity, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`,
		b.Name, b.Strength, b.BatchLabel, b.Quantity, b.ExpiryDate).
		Scan(&b.ID, &b.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Batch, error) {
	return scanBatch(r.conn(ctx).QueryRow(ctx, `SELECT `+batchCols+` FROM drugs WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, b *Batch) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE drugs SET name=$2, strength=$3, batch_id=$4, quantity=$5, expiry_date=$6
		WHERE id = $1`,
		b.ID, b.Name, b.Strength, b.BatchLabel, b.Quantity, b.ExpiryDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM drugs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*Batch, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+batchCols+` FROM drugs ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return scanBatches(rows)
}

func (r *repoPG) Restock(ctx context.Context, id int64, amount int64) (*Batch, error) {
	return scanBatch(r.conn(ctx).QueryRow(ctx, `
		UPDATE drugs SET quantity = quantity + $2
		WHERE id = $1
		RETURNING `+batchCols, id, amount))
}

func (r *repoPG) ListEligible(ctx context.Context, ref time.Time) ([]*Batch, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+batchCols+` FROM drugs
		WHERE expiry_date IS NULL OR expiry_date > $1
		ORDER BY name ASC, id ASC`, ref)
	if err != nil {
		return nil, err
	}
	return scanBatches(rows)
}

func (r *repoPG) ListEligibleByName(ctx context.Context, name string, ref time.Time) ([]*Batch, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+batchCols+` FROM drugs
		WHERE name = $1 AND (expiry_date IS NULL OR expiry_date > $2)
		ORDER BY id ASC`, name, ref)
	if err != nil {
		return nil, err
	}
	return scanBatches(rows)
}
