package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pharmacy-emr/inventory/internal/platform/telemetry"
)

const defaultListLimit = 200

type Service struct {
	repo    Repository
	logger  zerolog.Logger
	metrics *telemetry.Metrics
}

func NewService(repo Repository, logger zerolog.Logger, metrics *telemetry.Metrics) *Service {
	return &Service{repo: repo, logger: logger, metrics: metrics}
}

// Allocate validates the request and runs the atomic transfer. On any
// failure nothing is mutated: validation rejects before any read, and the
// repository rolls the transaction back on mid-unit errors.
func (s *Service) Allocate(ctx context.Context, req Request) (*Assignment, int64, error) {
	if req.FacilityID <= 0 || req.DrugID <= 0 || req.BatchNo == "" || req.QuantityAssigned <= 0 {
		s.record("invalid_input", 0)
		return nil, 0, fmt.Errorf(
			"%w: facility_id, drug_id, batch_no, and quantity_assigned are required and quantity must be positive",
			ErrInvalidInput)
	}

	a, remaining, err := s.repo.Allocate(ctx, req)
	if err != nil {
		s.record(outcomeOf(err), 0)
		return nil, 0, err
	}

	s.record("ok", a.QuantityAssigned)
	s.logger.Info().
		Int64("facility_id", a.FacilityID).
		Int64("drug_id", a.DrugID).
		Str("batch_no", a.BatchNo).
		Int64("quantity", a.QuantityAssigned).
		Int64("remaining", remaining).
		Msg("stock assigned")

	return a, remaining, nil
}

// ListRecent returns the newest ledger entries. A non-positive limit falls
// back to the default of 200.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*AssignmentView, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *Service) record(outcome string, quantity int64) {
	if s.metrics != nil {
		s.metrics.RecordAllocation(outcome, quantity)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "store_error"
	}
}
