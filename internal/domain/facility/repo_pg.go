package facility

import (
	"context"
	"errors"

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

const facilityCols = `id, name, location, contact, created_at`

func scanFacility(row pgx.Row) (*Facility, error) {
	var f Facility
	err := row.Scan(&f.ID, &f.Name, &f.Location, &f.Contact, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &f, err
}

func (r *repoPG) Create(ctx context.Context, f *Facility) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO facilities (name, location, contact)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		f.Name, f.Location, f.Contact).
		Scan(&f.ID, &f.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Facility, error) {
	return scanFacility(r.conn(ctx).QueryRow(ctx, `SELECT `+facilityCols+` FROM facilities WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, f *Facility) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE facilities SET name=$2, location=$3, contact=$4
		WHERE id = $1`,
		f.ID, f.Name, f.Location, f.Contact)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context) ([]*Facility, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+facilityCols+` FROM facilities ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}
