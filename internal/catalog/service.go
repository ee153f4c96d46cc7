package catalog

import (
	"context"

	"github.com/Rio-Chico-Devs/RCS-App-sub000/internal/shared"
)

// Service coordinates catalog operations.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Material, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Material, error) {
	if id <= 0 {
		return Material{}, shared.Validationf("catalog: invalid material id %d", id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (Material, error) {
	if name == "" {
		return Material{}, shared.Validationf("catalog: material name required")
	}
	return s.repo.GetByName(ctx, name)
}

func (s *Service) Create(ctx context.Context, m Material) (Material, error) {
	if err := validate(m); err != nil {
		return Material{}, err
	}
	return s.repo.Create(ctx, m)
}

// Update rewrites the definition fields of a material. OnHand is owned by
// the inventory ledger and is never touched here.
func (s *Service) Update(ctx context.Context, id int64, m Material) error {
	if id <= 0 {
		return shared.Validationf("catalog: invalid material id %d", id)
	}
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, m)
}

func (s *Service) UpdatePrice(ctx context.Context, id int64, unitPrice float64) error {
	if id <= 0 {
		return shared.Validationf("catalog: invalid material id %d", id)
	}
	if unitPrice < 0 {
		return shared.Validationf("catalog: unit price must be >= 0")
	}
	return s.repo.UpdatePrice(ctx, id, unitPrice)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.Validationf("catalog: invalid material id %d", id)
	}
	return s.repo.Delete(ctx, id)
}
