package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"benchlab/internal/availability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrAlreadyDecided   = errors.New("request already decided")
	ErrScheduleConflict = errors.New("schedule conflicts with an approved reservation")
)

type Repository interface {
	Create(ctx context.Context, request *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	ListByUser(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Request, int64, error)
	ListAll(ctx context.Context, query ListQuery) ([]Request, int64, error)

	// ListIntervals returns the active (pending + approved) reservation
	// intervals for one bench, the snapshot the availability engine consumes.
	ListIntervals(ctx context.Context, benchID uuid.UUID) ([]availability.Interval, error)

	// ApproveSchedule settles a schedule request atomically: the bench row
	// is locked, overlaps against approved reservations are re-checked
	// inside the transaction, and only then does the status flip.
	ApproveSchedule(ctx context.Context, requestID, adminID uuid.UUID) (*Request, error)

	Reject(ctx context.Context, requestID, adminID uuid.UUID, comment string) (*Request, error)

	// ResolveRegistration settles the registration request belonging to a
	// user, keeping the review queue in sync with account decisions.
	ResolveRegistration(ctx context.Context, userID, adminID uuid.UUID, approved bool) error

	CountByStatus(ctx context.Context) (map[RequestStatus]int64, error)
	CountUpcomingApproved(ctx context.Context, from time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, request *Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	var request Request
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, query ListQuery) ([]Request, int64, error) {
	return r.list(ctx, query, r.db.WithContext(ctx).Model(&Request{}).Where("user_id = ?", userID))
}

func (r *repository) ListAll(ctx context.Context, query ListQuery) ([]Request, int64, error) {
	return r.list(ctx, query, r.db.WithContext(ctx).Model(&Request{}))
}

func (r *repository) list(ctx context.Context, query ListQuery, base *gorm.DB) ([]Request, int64, error) {
	var requests []Request
	var total int64

	if query.Status != "" {
		base = base.Where("status = ?", query.Status)
	}
	if query.Type != "" {
		base = base.Where("type = ?", query.Type)
	}
	if query.BenchID != "" {
		base = base.Where("bench_id = ?", query.BenchID)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := base.Order("created_at DESC").Offset(offset).Limit(query.Limit).Find(&requests).Error
	return requests, total, err
}

func (r *repository) ListIntervals(ctx context.Context, benchID uuid.UUID) ([]availability.Interval, error) {
	var rows []Request
	err := r.db.WithContext(ctx).
		Where("bench_id = ? AND type = ? AND status IN ?",
			benchID, TypeSchedule, []RequestStatus{StatusPending, StatusApproved}).
		Order("starts_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	intervals := make([]availability.Interval, 0, len(rows))
	for _, row := range rows {
		if row.StartsAt == nil || row.EndsAt == nil {
			continue
		}
		status := availability.StatusPending
		if row.Status == StatusApproved {
			status = availability.StatusApproved
		}
		iv, err := availability.NewInterval(benchID, *row.StartsAt, *row.EndsAt, status)
		if err != nil {
			return nil, fmt.Errorf("corrupt reservation %s: %w", row.ID, err)
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

func (r *repository) ApproveSchedule(ctx context.Context, requestID, adminID uuid.UUID) (*Request, error) {
	var approved Request

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request Request
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Status != StatusPending {
			return ErrAlreadyDecided
		}
		if request.Type != TypeSchedule || request.BenchID == nil || request.StartsAt == nil || request.EndsAt == nil {
			return fmt.Errorf("request %s is not a schedule request", requestID)
		}

		// Lock the bench row so concurrent approvals on the same bench
		// serialize. The overlap re-check below then sees every approved
		// reservation, including ones approved a moment ago.
		var bench struct {
			ID uuid.UUID `gorm:"column:id"`
		}
		err := tx.Table("benches").
			Select("id").
			Where("id = ?", request.BenchID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&bench).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("bench not found")
			}
			return fmt.Errorf("failed to lock bench: %w", err)
		}

		// Closed-interval overlap: a reservation ending at the proposed
		// start still conflicts.
		var overlapping int64
		err = tx.Model(&Request{}).
			Where("bench_id = ? AND type = ? AND status = ?", request.BenchID, TypeSchedule, StatusApproved).
			Where("starts_at <= ? AND ends_at >= ?", request.EndsAt, request.StartsAt).
			Count(&overlapping).Error
		if err != nil {
			return fmt.Errorf("failed to re-check overlaps: %w", err)
		}
		if overlapping > 0 {
			return ErrScheduleConflict
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     StatusApproved,
			"decided_by": adminID,
			"decided_at": now,
		}
		if err := tx.Model(&Request{}).Where("id = ?", requestID).Updates(updates).Error; err != nil {
			return err
		}

		request.Status = StatusApproved
		request.DecidedBy = &adminID
		request.DecidedAt = &now
		approved = request
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &approved, nil
}

func (r *repository) Reject(ctx context.Context, requestID, adminID uuid.UUID, comment string) (*Request, error) {
	var rejected Request

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request Request
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if request.Status != StatusPending {
			return ErrAlreadyDecided
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     StatusRejected,
			"decided_by": adminID,
			"decided_at": now,
		}
		if comment != "" {
			updates["comments"] = comment
		}
		if err := tx.Model(&Request{}).Where("id = ?", requestID).Updates(updates).Error; err != nil {
			return err
		}

		request.Status = StatusRejected
		request.DecidedBy = &adminID
		request.DecidedAt = &now
		if comment != "" {
			request.Comments = comment
		}
		rejected = request
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &rejected, nil
}

func (r *repository) ResolveRegistration(ctx context.Context, userID, adminID uuid.UUID, approved bool) error {
	status := StatusApproved
	if !approved {
		status = StatusRejected
	}

	now := time.Now()
	result := r.db.WithContext(ctx).Model(&Request{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, TypeRegistration, StatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": adminID,
			"decided_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[RequestStatus]int64, error) {
	type row struct {
		Status RequestStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&Request{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[RequestStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *repository) CountUpcomingApproved(ctx context.Context, from time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Request{}).
		Where("type = ? AND status = ? AND ends_at >= ?", TypeSchedule, StatusApproved, from).
		Count(&count).Error
	return count, err
}

type ListQuery struct {
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status  string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Type    string `form:"type" binding:"omitempty,oneof=REGISTRATION SCHEDULE"`
	BenchID string `form:"bench_id" binding:"omitempty,uuid"`
}
