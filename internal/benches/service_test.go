package benches

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	benches map[uuid.UUID]*Bench
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{benches: make(map[uuid.UUID]*Bench)}
}

func (f *fakeRepository) Create(ctx context.Context, bench *Bench) error {
	if bench.ID == uuid.Nil {
		bench.ID = uuid.New()
	}
	f.benches[bench.ID] = bench
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Bench, error) {
	bench, ok := f.benches[id]
	if !ok {
		return nil, ErrBenchNotFound
	}
	copied := *bench
	return &copied, nil
}

func (f *fakeRepository) GetByName(ctx context.Context, name string) (*Bench, error) {
	for _, bench := range f.benches {
		if bench.Name == name {
			copied := *bench
			return &copied, nil
		}
	}
	return nil, ErrBenchNotFound
}

func (f *fakeRepository) List(ctx context.Context, filters ListFilters) (*PaginatedBenches, error) {
	var out []Bench
	for _, bench := range f.benches {
		if filters.Status != "" && string(bench.Status) != filters.Status {
			continue
		}
		out = append(out, *bench)
	}
	return &PaginatedBenches{
		Benches:    out,
		TotalCount: int64(len(out)),
		Page:       filters.Page,
		Limit:      filters.Limit,
	}, nil
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	bench, ok := f.benches[id]
	if !ok {
		return ErrBenchNotFound
	}
	if name, ok := updates["name"].(string); ok {
		bench.Name = name
	}
	if desc, ok := updates["description"].(string); ok {
		bench.Description = desc
	}
	if loc, ok := updates["location"].(string); ok {
		bench.Location = loc
	}
	if status, ok := updates["status"].(BenchStatus); ok {
		bench.Status = status
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.benches[id]; !ok {
		return ErrBenchNotFound
	}
	delete(f.benches, id)
	return nil
}

func TestCreateBench(t *testing.T) {
	ctx := context.Background()

	t.Run("new benches start active", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		bench, err := svc.CreateBench(ctx, &CreateBenchRequest{
			Name:     "soldering-station-1",
			Location: "room 204",
		})
		require.NoError(t, err)
		assert.Equal(t, BenchActive, bench.Status)
		assert.NotEqual(t, uuid.Nil, bench.ID)
	})

	t.Run("duplicate names are refused", func(t *testing.T) {
		repo := newFakeRepository()
		svc := NewService(repo)

		_, err := svc.CreateBench(ctx, &CreateBenchRequest{Name: "soldering-station-1"})
		require.NoError(t, err)

		_, err = svc.CreateBench(ctx, &CreateBenchRequest{Name: "soldering-station-1"})
		assert.ErrorIs(t, err, ErrNameTaken)
	})
}

func TestUpdateBench(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	bench, err := svc.CreateBench(ctx, &CreateBenchRequest{Name: "laser-bench"})
	require.NoError(t, err)

	status := string(BenchMaintenance)
	updated, err := svc.UpdateBench(ctx, bench.ID, &UpdateBenchRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, BenchMaintenance, updated.Status)
	assert.False(t, updated.Status.Schedulable())

	t.Run("unknown bench", func(t *testing.T) {
		_, err := svc.UpdateBench(ctx, uuid.New(), &UpdateBenchRequest{Status: &status})
		assert.ErrorIs(t, err, ErrBenchNotFound)
	})
}

func TestBenchStatus(t *testing.T) {
	tests := []struct {
		status      BenchStatus
		valid       bool
		schedulable bool
	}{
		{BenchActive, true, true},
		{BenchMaintenance, true, false},
		{BenchRetired, true, false},
		{BenchStatus("BROKEN"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
			assert.Equal(t, tt.schedulable, tt.status.Schedulable())
		})
	}
}

func TestListBenchesDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	result, err := svc.ListBenches(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
}
