package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	users map[uuid.UUID]*User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[uuid.UUID]*User)}
}

func (f *fakeRepository) add(user *User) *User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepository) List(ctx context.Context, query ListQuery) ([]User, int64, error) {
	var out []User
	for _, user := range f.users {
		if query.Status != "" && string(user.Status) != query.Status {
			continue
		}
		if query.Role != "" && string(user.Role) != query.Role {
			continue
		}
		out = append(out, *user)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, email string) error {
	user, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if email != "" {
		user.Email = email
	}
	return nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, comment string) error {
	user, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Status = status
	user.StatusComment = comment
	return nil
}

func (f *fakeRepository) UpdateRole(ctx context.Context, id uuid.UUID, role Role) error {
	user, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type resolvedRegistration struct {
	userID   uuid.UUID
	adminID  uuid.UUID
	approved bool
}

type fakeResolver struct {
	resolved []resolvedRegistration
}

func (f *fakeResolver) ResolveRegistration(ctx context.Context, userID, adminID uuid.UUID, approved bool) error {
	f.resolved = append(f.resolved, resolvedRegistration{userID: userID, adminID: adminID, approved: approved})
	return nil
}

type accountDecision struct {
	userID   uuid.UUID
	approved bool
	comment  string
}

type fakeAccountNotifier struct {
	decisions []accountDecision
}

func (f *fakeAccountNotifier) NotifyAccountDecision(ctx context.Context, user *User, approved bool, comment string) {
	f.decisions = append(f.decisions, accountDecision{userID: user.ID, approved: approved, comment: comment})
}

func pendingUser(repo *fakeRepository) *User {
	return repo.add(&User{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@lab.example",
		Role:      RoleUser,
		Status:    StatusPending,
	})
}

func TestApproveUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)
	resolver := &fakeResolver{}
	notifier := &fakeAccountNotifier{}
	svc.SetRegistrationResolver(resolver)
	svc.SetNotifier(notifier)

	user := pendingUser(repo)
	adminID := uuid.New()

	approved, err := svc.ApproveUser(ctx, user.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	require.Len(t, resolver.resolved, 1)
	assert.Equal(t, user.ID, resolver.resolved[0].userID)
	assert.Equal(t, adminID, resolver.resolved[0].adminID)
	assert.True(t, resolver.resolved[0].approved)

	require.Len(t, notifier.decisions, 1)
	assert.True(t, notifier.decisions[0].approved)

	// Approving twice is an invalid transition.
	_, err = svc.ApproveUser(ctx, user.ID, adminID)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestRejectUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)
	resolver := &fakeResolver{}
	notifier := &fakeAccountNotifier{}
	svc.SetRegistrationResolver(resolver)
	svc.SetNotifier(notifier)

	user := pendingUser(repo)
	adminID := uuid.New()

	rejected, err := svc.RejectUser(ctx, user.ID, adminID, "no lab affiliation on record")
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, rejected.Status)
	assert.Equal(t, "no lab affiliation on record", rejected.StatusComment)

	require.Len(t, resolver.resolved, 1)
	assert.False(t, resolver.resolved[0].approved)

	require.Len(t, notifier.decisions, 1)
	assert.False(t, notifier.decisions[0].approved)
	assert.Equal(t, "no lab affiliation on record", notifier.decisions[0].comment)
}

func TestEnableUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	user := pendingUser(repo)
	adminID := uuid.New()

	// Only disabled accounts can be re-enabled.
	_, err := svc.EnableUser(ctx, user.ID, adminID)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)

	user.Status = StatusDisabled
	enabled, err := svc.EnableUser(ctx, user.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, enabled.Status)
}

func TestDisableUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	user := pendingUser(repo)
	user.Status = StatusApproved

	t.Run("admins cannot disable themselves", func(t *testing.T) {
		_, err := svc.DisableUser(ctx, user.ID, user.ID, "oops")
		assert.ErrorIs(t, err, ErrSelfDemotion)
	})

	t.Run("disables another account", func(t *testing.T) {
		disabled, err := svc.DisableUser(ctx, user.ID, uuid.New(), "left the lab")
		require.NoError(t, err)
		assert.Equal(t, StatusDisabled, disabled.Status)
		assert.Equal(t, "left the lab", disabled.StatusComment)
	})
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewService(repo)

	user := pendingUser(repo)
	user.Status = StatusApproved

	t.Run("admins cannot change their own role", func(t *testing.T) {
		_, err := svc.SetRole(ctx, user.ID, user.ID, RoleAdmin)
		assert.ErrorIs(t, err, ErrSelfDemotion)
	})

	t.Run("promotes a user", func(t *testing.T) {
		promoted, err := svc.SetRole(ctx, user.ID, uuid.New(), RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, promoted.Role)
	})
}

func TestStatusCanSchedule(t *testing.T) {
	assert.True(t, StatusApproved.CanSchedule())
	assert.False(t, StatusPending.CanSchedule())
	assert.False(t, StatusDisabled.CanSchedule())
}
