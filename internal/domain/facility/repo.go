package facility

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a referenced facility does not exist.
var ErrNotFound = errors.New("facility not found")

type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id int64) (*Facility, error)
	Update(ctx context.Context, f *Facility) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Facility, error)
}
