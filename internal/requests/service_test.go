package requests

import (
	"context"
	"testing"
	"time"

	"benchlab/internal/availability"
	"benchlab/internal/benches"
	"benchlab/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	requests  map[uuid.UUID]*Request
	intervals []availability.Interval

	approveErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{requests: make(map[uuid.UUID]*Request)}
}

func (f *fakeRepository) Create(ctx context.Context, request *Request) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.CreatedAt = time.Now()
	f.requests[request.ID] = request
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Request, int64, error) {
	var out []Request
	for _, request := range f.requests {
		if request.UserID == userID {
			out = append(out, *request)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) ListAll(ctx context.Context, query ListQuery) ([]Request, int64, error) {
	var out []Request
	for _, request := range f.requests {
		if query.Status != "" && string(request.Status) != query.Status {
			continue
		}
		out = append(out, *request)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) ListIntervals(ctx context.Context, benchID uuid.UUID) ([]availability.Interval, error) {
	return f.intervals, nil
}

func (f *fakeRepository) ApproveSchedule(ctx context.Context, requestID, adminID uuid.UUID) (*Request, error) {
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	request, ok := f.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if request.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}
	now := time.Now()
	request.Status = StatusApproved
	request.DecidedBy = &adminID
	request.DecidedAt = &now
	copied := *request
	return &copied, nil
}

func (f *fakeRepository) Reject(ctx context.Context, requestID, adminID uuid.UUID, comment string) (*Request, error) {
	request, ok := f.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if request.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}
	now := time.Now()
	request.Status = StatusRejected
	request.DecidedBy = &adminID
	request.DecidedAt = &now
	if comment != "" {
		request.Comments = comment
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRepository) ResolveRegistration(ctx context.Context, userID, adminID uuid.UUID, approved bool) error {
	for _, request := range f.requests {
		if request.UserID == userID && request.Type == TypeRegistration && request.Status == StatusPending {
			if approved {
				request.Status = StatusApproved
			} else {
				request.Status = StatusRejected
			}
			request.DecidedBy = &adminID
			return nil
		}
	}
	return ErrRequestNotFound
}

func (f *fakeRepository) CountByStatus(ctx context.Context) (map[RequestStatus]int64, error) {
	counts := make(map[RequestStatus]int64)
	for _, request := range f.requests {
		counts[request.Status]++
	}
	return counts, nil
}

func (f *fakeRepository) CountUpcomingApproved(ctx context.Context, from time.Time) (int64, error) {
	var count int64
	for _, request := range f.requests {
		if request.Type == TypeSchedule && request.Status == StatusApproved &&
			request.EndsAt != nil && !request.EndsAt.Before(from) {
			count++
		}
	}
	return count, nil
}

// fakeBenchRepository serves a single bench.
type fakeBenchRepository struct {
	bench *benches.Bench
}

func (f *fakeBenchRepository) Create(ctx context.Context, bench *benches.Bench) error { return nil }

func (f *fakeBenchRepository) GetByID(ctx context.Context, id uuid.UUID) (*benches.Bench, error) {
	if f.bench == nil || f.bench.ID != id {
		return nil, benches.ErrBenchNotFound
	}
	return f.bench, nil
}

func (f *fakeBenchRepository) GetByName(ctx context.Context, name string) (*benches.Bench, error) {
	return nil, benches.ErrBenchNotFound
}

func (f *fakeBenchRepository) List(ctx context.Context, filters benches.ListFilters) (*benches.PaginatedBenches, error) {
	return &benches.PaginatedBenches{}, nil
}

func (f *fakeBenchRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

func (f *fakeBenchRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type recordedDecision struct {
	requestID uuid.UUID
	approved  bool
	comment   string
}

type fakeNotifier struct {
	decisions []recordedDecision
}

func (f *fakeNotifier) NotifyScheduleDecision(ctx context.Context, request *Request, approved bool, comment string) {
	f.decisions = append(f.decisions, recordedDecision{requestID: request.ID, approved: approved, comment: comment})
}

func testConfig() *config.Config {
	return &config.Config{
		Schedule: config.ScheduleConfig{OpenHour: 8, CloseHour: 19},
	}
}

func newTestService(repo *fakeRepository, benchRepo *fakeBenchRepository) *service {
	return NewService(repo, benchRepo, nil, testConfig())
}

func activeBench() *benches.Bench {
	return &benches.Bench{
		ID:     uuid.New(),
		Name:   "oscilloscope-bench",
		Status: benches.BenchActive,
	}
}

func futureDay(days int) time.Time {
	return time.Now().AddDate(0, 0, days).Truncate(24 * time.Hour).Add(9 * time.Hour)
}

func TestSubmitScheduleRequest(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("accepts a clean range and files a pending request", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()
		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		start := futureDay(2)
		end := futureDay(3)

		result, err := svc.SubmitScheduleRequest(ctx, userID, bench.ID, SubmitScheduleDTO{
			Start: start.Format(time.RFC3339),
			End:   end.Format(time.RFC3339),
		})
		require.NoError(t, err)
		assert.True(t, result.Validation.Accepted)
		assert.Empty(t, result.Validation.Warning)

		require.NotNil(t, result.Request)
		assert.Equal(t, TypeSchedule, result.Request.Type)
		assert.Equal(t, StatusPending, result.Request.Status)
		assert.Equal(t, userID, result.Request.UserID)
		require.NotNil(t, result.Request.BenchID)
		assert.Equal(t, bench.ID, *result.Request.BenchID)
	})

	t.Run("rejects a reversed range without creating a request", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()
		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		result, err := svc.SubmitScheduleRequest(ctx, userID, bench.ID, SubmitScheduleDTO{
			Start: futureDay(3).Format(time.RFC3339),
			End:   futureDay(2).Format(time.RFC3339),
		})
		require.NoError(t, err)
		assert.False(t, result.Validation.Accepted)
		assert.Equal(t, availability.ReasonInvalidOrder, result.Validation.Reason)
		assert.Nil(t, result.Request)
		assert.Empty(t, repo.requests)
	})

	t.Run("rejects a range crossing a fully booked day", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()

		blockedDay := futureDay(5)
		iv, err := availability.NewInterval(bench.ID,
			availability.StartOfDay(blockedDay), availability.EndOfDay(blockedDay),
			availability.StatusApproved)
		require.NoError(t, err)
		repo.intervals = []availability.Interval{iv}

		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		result, err := svc.SubmitScheduleRequest(ctx, userID, bench.ID, SubmitScheduleDTO{
			Start: futureDay(4).Format(time.RFC3339),
			End:   futureDay(6).Format(time.RFC3339),
		})
		require.NoError(t, err)
		assert.False(t, result.Validation.Accepted)
		assert.Equal(t, availability.ReasonConflict, result.Validation.Reason)
		require.NotNil(t, result.Validation.ConflictDay)
		assert.True(t, availability.SameDay(*result.Validation.ConflictDay, blockedDay))
		assert.Empty(t, repo.requests)
	})

	t.Run("accepts with a warning when overlapping a pending request", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()

		pendingDay := futureDay(5)
		iv, err := availability.NewInterval(bench.ID,
			pendingDay, pendingDay.Add(2*time.Hour), availability.StatusPending)
		require.NoError(t, err)
		repo.intervals = []availability.Interval{iv}

		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		result, err := svc.SubmitScheduleRequest(ctx, userID, bench.ID, SubmitScheduleDTO{
			Start: futureDay(5).Format(time.RFC3339),
			End:   futureDay(6).Format(time.RFC3339),
		})
		require.NoError(t, err)
		assert.True(t, result.Validation.Accepted)
		assert.Equal(t, availability.WarningPendingOverlap, result.Validation.Warning)
		assert.NotNil(t, result.Request)
	})

	t.Run("refuses benches that are not schedulable", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()
		bench.Status = benches.BenchMaintenance
		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		_, err := svc.SubmitScheduleRequest(ctx, userID, bench.ID, SubmitScheduleDTO{
			Start: futureDay(2).Format(time.RFC3339),
			End:   futureDay(3).Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrBenchUnavailable)
	})

	t.Run("rejects malformed timestamps", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()
		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		_, err := svc.SubmitScheduleRequest(ctx, userID, bench.ID, SubmitScheduleDTO{
			Start: "2025/01/01",
			End:   futureDay(3).Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func TestApproveRequest(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("approves a pending schedule request and notifies", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()
		svc := newTestService(repo, &fakeBenchRepository{bench: bench})
		notifier := &fakeNotifier{}
		svc.SetNotifier(notifier)

		start := futureDay(2)
		end := futureDay(3)
		request := &Request{
			Type:     TypeSchedule,
			Status:   StatusPending,
			UserID:   uuid.New(),
			BenchID:  &bench.ID,
			StartsAt: &start,
			EndsAt:   &end,
		}
		require.NoError(t, repo.Create(ctx, request))

		approved, err := svc.ApproveRequest(ctx, request.ID, adminID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, approved.Status)
		require.NotNil(t, approved.DecidedBy)
		assert.Equal(t, adminID, *approved.DecidedBy)

		require.Len(t, notifier.decisions, 1)
		assert.True(t, notifier.decisions[0].approved)
		assert.Equal(t, request.ID, notifier.decisions[0].requestID)
	})

	t.Run("refuses registration requests", func(t *testing.T) {
		repo := newFakeRepository()
		bench := activeBench()
		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		request := &Request{Type: TypeRegistration, Status: StatusPending, UserID: uuid.New()}
		require.NoError(t, repo.Create(ctx, request))

		_, err := svc.ApproveRequest(ctx, request.ID, adminID)
		assert.ErrorIs(t, err, ErrNotScheduleRequest)
	})

	t.Run("surfaces a conflict found at approval time", func(t *testing.T) {
		repo := newFakeRepository()
		repo.approveErr = ErrScheduleConflict
		bench := activeBench()
		svc := newTestService(repo, &fakeBenchRepository{bench: bench})

		start := futureDay(2)
		end := futureDay(3)
		request := &Request{
			Type:     TypeSchedule,
			Status:   StatusPending,
			UserID:   uuid.New(),
			BenchID:  &bench.ID,
			StartsAt: &start,
			EndsAt:   &end,
		}
		require.NoError(t, repo.Create(ctx, request))

		_, err := svc.ApproveRequest(ctx, request.ID, adminID)
		assert.ErrorIs(t, err, ErrScheduleConflict)
	})
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	repo := newFakeRepository()
	bench := activeBench()
	svc := newTestService(repo, &fakeBenchRepository{bench: bench})
	notifier := &fakeNotifier{}
	svc.SetNotifier(notifier)

	start := futureDay(2)
	end := futureDay(3)
	request := &Request{
		Type:     TypeSchedule,
		Status:   StatusPending,
		UserID:   uuid.New(),
		BenchID:  &bench.ID,
		StartsAt: &start,
		EndsAt:   &end,
	}
	require.NoError(t, repo.Create(ctx, request))

	rejected, err := svc.RejectRequest(ctx, request.ID, adminID, "bench reserved for maintenance")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Equal(t, "bench reserved for maintenance", rejected.Comments)

	require.Len(t, notifier.decisions, 1)
	assert.False(t, notifier.decisions[0].approved)
	assert.Equal(t, "bench reserved for maintenance", notifier.decisions[0].comment)

	// A second decision on the same request is refused.
	_, err = svc.RejectRequest(ctx, request.ID, adminID, "")
	assert.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestGetBenchCalendar(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	bench := activeBench()
	svc := newTestService(repo, &fakeBenchRepository{bench: bench})

	t.Run("builds a whole-week grid for the month", func(t *testing.T) {
		calendar, err := svc.GetBenchCalendar(ctx, bench.ID, "2025-01")
		require.NoError(t, err)
		assert.Equal(t, "2025-01", calendar.Month)
		assert.Equal(t, bench.ID.String(), calendar.BenchID)
		// January 2025 spans five Sunday-first weeks.
		assert.Len(t, calendar.Days, 35)
		assert.Equal(t, availability.OperatingHours{Open: 8, Close: 19}, calendar.OperatingHours)
	})

	t.Run("rejects malformed months", func(t *testing.T) {
		_, err := svc.GetBenchCalendar(ctx, bench.ID, "January 2025")
		assert.ErrorIs(t, err, ErrInvalidMonth)
	})

	t.Run("unknown bench", func(t *testing.T) {
		_, err := svc.GetBenchCalendar(ctx, uuid.New(), "2025-01")
		assert.ErrorIs(t, err, benches.ErrBenchNotFound)
	})
}

func TestRegistrationLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	bench := activeBench()
	svc := newTestService(repo, &fakeBenchRepository{bench: bench})

	userID := uuid.New()
	adminID := uuid.New()

	require.NoError(t, svc.CreateRegistrationRequest(ctx, userID))
	require.Len(t, repo.requests, 1)
	for _, request := range repo.requests {
		assert.Equal(t, TypeRegistration, request.Type)
		assert.Equal(t, StatusPending, request.Status)
	}

	require.NoError(t, svc.ResolveRegistration(ctx, userID, adminID, true))
	for _, request := range repo.requests {
		assert.Equal(t, StatusApproved, request.Status)
	}

	// Resolving again finds no pending registration.
	err := svc.ResolveRegistration(ctx, userID, adminID, true)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	bench := activeBench()
	svc := newTestService(repo, &fakeBenchRepository{bench: bench})

	past := futureDay(-10)
	pastEnd := futureDay(-9)
	future := futureDay(5)
	futureEnd := futureDay(6)

	seed := []*Request{
		{Type: TypeSchedule, Status: StatusPending, UserID: uuid.New(), BenchID: &bench.ID, StartsAt: &future, EndsAt: &futureEnd},
		{Type: TypeSchedule, Status: StatusApproved, UserID: uuid.New(), BenchID: &bench.ID, StartsAt: &future, EndsAt: &futureEnd},
		{Type: TypeSchedule, Status: StatusApproved, UserID: uuid.New(), BenchID: &bench.ID, StartsAt: &past, EndsAt: &pastEnd},
		{Type: TypeRegistration, Status: StatusRejected, UserID: uuid.New()},
	}
	for _, request := range seed {
		require.NoError(t, repo.Create(ctx, request))
	}

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Equal(t, int64(2), stats.ApprovedRequests)
	assert.Equal(t, int64(1), stats.RejectedRequests)
	assert.Equal(t, int64(1), stats.UpcomingReservations)
}
