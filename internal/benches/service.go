package benches

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateBench(ctx context.Context, req *CreateBenchRequest) (*Bench, error)
	GetBench(ctx context.Context, id uuid.UUID) (*Bench, error)
	ListBenches(ctx context.Context, filters ListFilters) (*PaginatedBenches, error)
	UpdateBench(ctx context.Context, id uuid.UUID, req *UpdateBenchRequest) (*Bench, error)
	DeleteBench(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateBench(ctx context.Context, req *CreateBenchRequest) (*Bench, error) {
	// Name collisions surface as a friendly error rather than a raw
	// unique-constraint violation.
	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrBenchNotFound) {
		return nil, err
	}

	bench := &Bench{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Status:      BenchActive,
	}

	if err := s.repo.Create(ctx, bench); err != nil {
		return nil, err
	}
	return bench, nil
}

func (s *service) GetBench(ctx context.Context, id uuid.UUID) (*Bench, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListBenches(ctx context.Context, filters ListFilters) (*PaginatedBenches, error) {
	if filters.Page == 0 {
		filters.Page = 1
	}
	if filters.Limit == 0 {
		filters.Limit = 20
	}
	return s.repo.List(ctx, filters)
}

func (s *service) UpdateBench(ctx context.Context, id uuid.UUID, req *UpdateBenchRequest) (*Bench, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Status != nil {
		status := BenchStatus(*req.Status)
		if !status.IsValid() {
			return nil, gorm.ErrInvalidData
		}
		updates["status"] = status
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteBench(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
