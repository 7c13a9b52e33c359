package drug

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListAvailable returns one aggregate per drug name over the batches still
// eligible at ref. Groups keep the strength of the first batch encountered;
// empty batches contribute zero but do not drop out of the group. The result
// is a single consistent read — callers racing an in-flight allocation must
// re-query after it commits.
func (s *Service) ListAvailable(ctx context.Context, ref time.Time) ([]Aggregate, error) {
	batches, err := s.repo.ListEligible(ctx, ref)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	aggregates := make([]Aggregate, 0, len(batches))
	for _, b := range batches {
		i, ok := index[b.Name]
		if !ok {
			index[b.Name] = len(aggregates)
			aggregates = append(aggregates, Aggregate{Name: b.Name, Strength: b.Strength})
			i = len(aggregates) - 1
		}
		aggregates[i].TotalQty += b.Quantity
	}
	return aggregates, nil
}

// ListBatchesForName returns the concrete eligible batches for one drug
// name, for the caller to pick an allocation target from.
func (s *Service) ListBatchesForName(ctx context.Context, name string, ref time.Time) ([]*Batch, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return s.repo.ListEligibleByName(ctx, name, ref)
}

func (s *Service) CreateBatch(ctx context.Context, b *Batch) error {
	if b.Name == "" || b.Strength == "" || b.BatchLabel == "" {
		return fmt.Errorf("name, strength, and batch_id are required")
	}
	if b.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	return s.repo.Create(ctx, b)
}

func (s *Service) GetBatch(ctx context.Context, id int64) (*Batch, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateBatch(ctx context.Context, b *Batch) error {
	if b.Name == "" || b.Strength == "" || b.BatchLabel == "" {
		return fmt.Errorf("name, strength, and batch_id are required")
	}
	if b.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	return s.repo.Update(ctx, b)
}

func (s *Service) DeleteBatch(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListBatches(ctx context.Context) ([]*Batch, error) {
	return s.repo.List(ctx)
}

// Restock adds amount to a batch's central quantity.
func (s *Service) Restock(ctx context.Context, id int64, amount int64) (*Batch, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be a positive integer")
	}
	return s.repo.Restock(ctx, id, amount)
}
