package benches

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBenchNotFound = errors.New("bench not found")
	ErrNameTaken     = errors.New("bench name already in use")
)

type Repository interface {
	Create(ctx context.Context, bench *Bench) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bench, error)
	GetByName(ctx context.Context, name string) (*Bench, error)
	List(ctx context.Context, filters ListFilters) (*PaginatedBenches, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, bench *Bench) error {
	return r.db.WithContext(ctx).Create(bench).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Bench, error) {
	var bench Bench
	err := r.db.WithContext(ctx).First(&bench, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBenchNotFound
		}
		return nil, err
	}
	return &bench, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Bench, error) {
	var bench Bench
	err := r.db.WithContext(ctx).First(&bench, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBenchNotFound
		}
		return nil, err
	}
	return &bench, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) (*PaginatedBenches, error) {
	var benches []Bench
	var total int64

	query := r.db.WithContext(ctx).Model(&Bench{})

	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("name ILIKE ? OR description ILIKE ? OR location ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	sortOrder := filters.SortOrder
	if sortOrder == "" {
		sortOrder = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	offset := (filters.Page - 1) * filters.Limit
	if err := query.Offset(offset).Limit(filters.Limit).Find(&benches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))

	return &PaginatedBenches{
		Benches:    benches,
		TotalCount: total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Bench{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBenchNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Bench{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBenchNotFound
	}
	return nil
}

type ListFilters struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=ACTIVE MAINTENANCE RETIRED"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=name created_at updated_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type PaginatedBenches struct {
	Benches    []Bench `json:"benches"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}
