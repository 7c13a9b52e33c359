package facility

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, f *Facility) error {
	if f.Name == "" {
		return fmt.Errorf("facility name is required")
	}
	return s.repo.Create(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, f *Facility) error {
	if f.Name == "" {
		return fmt.Errorf("facility name is required")
	}
	return s.repo.Update(ctx, f)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Facility, error) {
	return s.repo.List(ctx)
}
