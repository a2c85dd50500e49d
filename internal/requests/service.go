package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"benchlab/internal/availability"
	"benchlab/internal/benches"
	"benchlab/internal/shared/config"
	"benchlab/pkg/cache"
	"benchlab/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrBenchUnavailable   = errors.New("bench is not accepting reservations")
	ErrNotScheduleRequest = errors.New("registration requests are decided through user approval")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrInvalidMonth       = errors.New("invalid month")
)

// ScheduleNotifier publishes reservation decision notifications. Best
// effort, mirroring the account notifier on the users side.
type ScheduleNotifier interface {
	NotifyScheduleDecision(ctx context.Context, request *Request, approved bool, comment string)
}

type Service interface {
	// Scheduling surface for approved users
	GetBenchCalendar(ctx context.Context, benchID uuid.UUID, month string) (*CalendarResponse, error)
	ValidateRange(ctx context.Context, benchID uuid.UUID, dto ValidateRangeDTO) (*availability.RangeResult, error)
	SubmitScheduleRequest(ctx context.Context, userID, benchID uuid.UUID, dto SubmitScheduleDTO) (*SubmitResponse, error)
	ListMyRequests(ctx context.Context, userID uuid.UUID, query ListQuery) (*PaginatedRequests, error)

	// Admin review queue
	ListRequests(ctx context.Context, query ListQuery) (*PaginatedRequests, error)
	ApproveRequest(ctx context.Context, requestID, adminID uuid.UUID) (*Request, error)
	RejectRequest(ctx context.Context, requestID, adminID uuid.UUID, comment string) (*Request, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)

	// Hooks for the auth and users modules
	CreateRegistrationRequest(ctx context.Context, userID uuid.UUID) error
	ResolveRegistration(ctx context.Context, userID, adminID uuid.UUID, approved bool) error
}

type service struct {
	repo     Repository
	benches  benches.Repository
	cache    cache.Service
	config   *config.Config
	log      *logger.Logger
	notifier ScheduleNotifier
}

func NewService(repo Repository, benchRepo benches.Repository, cacheService cache.Service, cfg *config.Config) *service {
	return &service{
		repo:    repo,
		benches: benchRepo,
		cache:   cacheService,
		config:  cfg,
		log:     logger.GetDefault(),
	}
}

// SetNotifier injects the notification publisher.
func (s *service) SetNotifier(notifier ScheduleNotifier) {
	s.notifier = notifier
}

func (s *service) operatingHours() availability.OperatingHours {
	open, close := s.config.OperatingHours()
	return availability.OperatingHours{Open: open, Close: close}
}

func intervalSnapshotKey(benchID uuid.UUID) string {
	return fmt.Sprintf("benchlab:intervals:%s", benchID)
}

// loadIntervals fetches the bench's active intervals through the cache.
// A stale snapshot can only make proposal-time validation optimistic;
// approval re-checks inside a transaction, so correctness never depends
// on cache freshness.
func (s *service) loadIntervals(ctx context.Context, benchID uuid.UUID) (approved, pending []availability.Interval, err error) {
	var intervals []availability.Interval

	if s.cache != nil {
		err = s.cache.GetOrSet(ctx, intervalSnapshotKey(benchID), s.config.Redis.SnapshotTTL,
			func() (interface{}, error) {
				return s.repo.ListIntervals(ctx, benchID)
			}, &intervals)
	} else {
		intervals, err = s.repo.ListIntervals(ctx, benchID)
	}
	if err != nil {
		return nil, nil, err
	}

	for _, iv := range intervals {
		if iv.Status == availability.StatusApproved {
			approved = append(approved, iv)
		} else {
			pending = append(pending, iv)
		}
	}
	return approved, pending, nil
}

func (s *service) invalidateSnapshot(ctx context.Context, benchID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, intervalSnapshotKey(benchID)); err != nil {
		s.log.WithError(err).Warn("failed to invalidate interval snapshot", "bench_id", benchID.String())
	}
}

func (s *service) GetBenchCalendar(ctx context.Context, benchID uuid.UUID, month string) (*CalendarResponse, error) {
	anchor, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	if _, err := s.benches.GetByID(ctx, benchID); err != nil {
		return nil, err
	}

	approved, pending, err := s.loadIntervals(ctx, benchID)
	if err != nil {
		return nil, err
	}

	hours := s.operatingHours()
	days := availability.BuildMonthView(anchor, time.Now(), approved, pending, hours)

	return &CalendarResponse{
		BenchID:        benchID.String(),
		Month:          month,
		OperatingHours: hours,
		Days:           days,
	}, nil
}

func (s *service) ValidateRange(ctx context.Context, benchID uuid.UUID, dto ValidateRangeDTO) (*availability.RangeResult, error) {
	start, end, err := parseRange(dto.Start, dto.End)
	if err != nil {
		return nil, err
	}

	if _, err := s.benches.GetByID(ctx, benchID); err != nil {
		return nil, err
	}

	approved, pending, err := s.loadIntervals(ctx, benchID)
	if err != nil {
		return nil, err
	}

	result := availability.ValidateRange(start, end, approved, pending, time.Now(), s.operatingHours())
	return &result, nil
}

func (s *service) SubmitScheduleRequest(ctx context.Context, userID, benchID uuid.UUID, dto SubmitScheduleDTO) (*SubmitResponse, error) {
	start, end, err := parseRange(dto.Start, dto.End)
	if err != nil {
		return nil, err
	}

	bench, err := s.benches.GetByID(ctx, benchID)
	if err != nil {
		return nil, err
	}
	if !bench.Status.Schedulable() {
		return nil, ErrBenchUnavailable
	}

	approved, pending, err := s.loadIntervals(ctx, benchID)
	if err != nil {
		return nil, err
	}

	result := availability.ValidateRange(start, end, approved, pending, time.Now(), s.operatingHours())
	if !result.Accepted {
		// A rejected range is a normal outcome, not an error.
		return &SubmitResponse{Validation: result}, nil
	}

	request := &Request{
		Type:     TypeSchedule,
		Status:   StatusPending,
		UserID:   userID,
		BenchID:  &benchID,
		StartsAt: &start,
		EndsAt:   &end,
		Comments: dto.Comments,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.invalidateSnapshot(ctx, benchID)

	return &SubmitResponse{Request: request, Validation: result}, nil
}

func (s *service) ListMyRequests(ctx context.Context, userID uuid.UUID, query ListQuery) (*PaginatedRequests, error) {
	normalizeQuery(&query)
	rows, total, err := s.repo.ListByUser(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	return paginate(rows, total, query), nil
}

func (s *service) ListRequests(ctx context.Context, query ListQuery) (*PaginatedRequests, error) {
	normalizeQuery(&query)
	rows, total, err := s.repo.ListAll(ctx, query)
	if err != nil {
		return nil, err
	}
	return paginate(rows, total, query), nil
}

func (s *service) ApproveRequest(ctx context.Context, requestID, adminID uuid.UUID) (*Request, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Type != TypeSchedule {
		return nil, ErrNotScheduleRequest
	}

	approved, err := s.repo.ApproveSchedule(ctx, requestID, adminID)
	if err != nil {
		return nil, err
	}

	s.invalidateSnapshot(ctx, *approved.BenchID)
	s.log.LogScheduleDecision(ctx, requestID.String(), adminID.String(), "APPROVED")

	if s.notifier != nil {
		s.notifier.NotifyScheduleDecision(ctx, approved, true, "")
	}
	return approved, nil
}

func (s *service) RejectRequest(ctx context.Context, requestID, adminID uuid.UUID, comment string) (*Request, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Type != TypeSchedule {
		return nil, ErrNotScheduleRequest
	}

	rejected, err := s.repo.Reject(ctx, requestID, adminID, comment)
	if err != nil {
		return nil, err
	}

	if rejected.BenchID != nil {
		s.invalidateSnapshot(ctx, *rejected.BenchID)
	}
	s.log.LogScheduleDecision(ctx, requestID.String(), adminID.String(), "REJECTED")

	if s.notifier != nil {
		s.notifier.NotifyScheduleDecision(ctx, rejected, false, comment)
	}
	return rejected, nil
}

func (s *service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.repo.CountUpcomingApproved(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		PendingRequests:      counts[StatusPending],
		ApprovedRequests:     counts[StatusApproved],
		RejectedRequests:     counts[StatusRejected],
		UpcomingReservations: upcoming,
	}, nil
}

func (s *service) CreateRegistrationRequest(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Create(ctx, &Request{
		Type:   TypeRegistration,
		Status: StatusPending,
		UserID: userID,
	})
}

func (s *service) ResolveRegistration(ctx context.Context, userID, adminID uuid.UUID, approved bool) error {
	return s.repo.ResolveRegistration(ctx, userID, adminID, approved)
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", ErrInvalidTimestamp, startStr)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", ErrInvalidTimestamp, endStr)
	}
	return start, end, nil
}

func normalizeQuery(query *ListQuery) {
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}
}

func paginate(rows []Request, total int64, query ListQuery) *PaginatedRequests {
	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &PaginatedRequests{
		Requests:   rows,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}
}
