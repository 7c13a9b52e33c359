package drug

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced batch row does not exist.
var ErrNotFound = errors.New("drug batch not found")

type Repository interface {
	Create(ctx context.Context, b *Batch) error
	GetByID(ctx context.Context, id int64) (*Batch, error)
	Update(ctx context.Context, b *Batch) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Batch, error)

	// Restock adds amount to the batch quantity and returns the updated row.
	Restock(ctx context.Context, id int64, amount int64) (*Batch, error)

	// ListEligible returns batches whose expiry is null or after ref,
	// ordered by name then id. Zero-quantity batches are included.
	ListEligible(ctx context.Context, ref time.Time) ([]*Batch, error)

	// ListEligibleByName is ListEligible restricted to one drug name.
	ListEligibleByName(ctx context.Context, name string, ref time.Time) ([]*Batch, error)
}
