package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatusChange = errors.New("invalid status change")
	ErrSelfDemotion        = errors.New("administrators cannot change their own account")
)

// RegistrationResolver closes the loop with the request store: approving or
// rejecting an account also settles the user's registration request. Wired in
// by the router to avoid a package cycle with the requests module.
type RegistrationResolver interface {
	ResolveRegistration(ctx context.Context, userID, adminID uuid.UUID, approved bool) error
}

// AccountNotifier publishes account decision notifications. Best effort:
// failures are the notifier's problem, never the caller's.
type AccountNotifier interface {
	NotifyAccountDecision(ctx context.Context, user *User, approved bool, comment string)
}

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error)

	// Admin operations
	ListUsers(ctx context.Context, query ListQuery) ([]User, int64, error)
	ApproveUser(ctx context.Context, userID, adminID uuid.UUID) (*User, error)
	RejectUser(ctx context.Context, userID, adminID uuid.UUID, reason string) (*User, error)
	EnableUser(ctx context.Context, userID, adminID uuid.UUID) (*User, error)
	DisableUser(ctx context.Context, userID, adminID uuid.UUID, reason string) (*User, error)
	SetRole(ctx context.Context, userID, adminID uuid.UUID, role Role) (*User, error)
}

type service struct {
	repo     Repository
	resolver RegistrationResolver
	notifier AccountNotifier
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// SetRegistrationResolver injects the request-store hook.
func (s *service) SetRegistrationResolver(resolver RegistrationResolver) {
	s.resolver = resolver
}

// SetNotifier injects the notification publisher.
func (s *service) SetNotifier(notifier AccountNotifier) {
	s.notifier = notifier
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*User, error) {
	if err := s.repo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *service) ListUsers(ctx context.Context, query ListQuery) ([]User, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *service) ApproveUser(ctx context.Context, userID, adminID uuid.UUID) (*User, error) {
	return s.decide(ctx, userID, adminID, StatusApproved, "", true)
}

func (s *service) RejectUser(ctx context.Context, userID, adminID uuid.UUID, reason string) (*User, error) {
	return s.decide(ctx, userID, adminID, StatusDisabled, reason, false)
}

func (s *service) EnableUser(ctx context.Context, userID, adminID uuid.UUID) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != StatusDisabled {
		return nil, ErrInvalidStatusChange
	}
	if err := s.repo.UpdateStatus(ctx, userID, StatusApproved, ""); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *service) DisableUser(ctx context.Context, userID, adminID uuid.UUID, reason string) (*User, error) {
	if userID == adminID {
		return nil, ErrSelfDemotion
	}
	if err := s.repo.UpdateStatus(ctx, userID, StatusDisabled, reason); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *service) SetRole(ctx context.Context, userID, adminID uuid.UUID, role Role) (*User, error) {
	if userID == adminID {
		return nil, ErrSelfDemotion
	}
	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

// decide settles a pending registration one way or the other and fans out
// the side effects (registration request + notification).
func (s *service) decide(ctx context.Context, userID, adminID uuid.UUID, status Status, comment string, approved bool) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != StatusPending {
		return nil, ErrInvalidStatusChange
	}

	if err := s.repo.UpdateStatus(ctx, userID, status, comment); err != nil {
		return nil, err
	}

	if s.resolver != nil {
		if err := s.resolver.ResolveRegistration(ctx, userID, adminID, approved); err != nil {
			return nil, err
		}
	}

	user, err = s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyAccountDecision(ctx, user, approved, comment)
	}

	return user, nil
}
