package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type mockJoinRequestRepo struct {
	mock.Mock
}

func (m *mockJoinRequestRepo) Create(ctx context.Context, j *domain.JoinRequest) error {
	args := m.Called(ctx, j)
	if args.Error(0) == nil {
		j.ID = 11
	}
	return args.Error(0)
}

func (m *mockJoinRequestRepo) GetByID(ctx context.Context, id int64) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}

func (m *mockJoinRequestRepo) FindPending(ctx context.Context, userID, businessID int64) (*domain.JoinRequest, error) {
	args := m.Called(ctx, userID, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}

func (m *mockJoinRequestRepo) Resolve(ctx context.Context, id int64, status domain.JoinRequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockJoinRequestRepo) ListByBusiness(ctx context.Context, businessID int64) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GrantRole(ctx context.Context, userID int64, role domain.UserRole, businessID int64) error {
	args := m.Called(ctx, userID, role, businessID)
	return args.Error(0)
}

type mockBusinessRepo struct {
	mock.Mock
}

func (m *mockBusinessRepo) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyJoinRequestResolved(ctx context.Context, userID int64, approved bool, businessName string) error {
	args := m.Called(ctx, userID, approved, businessName)
	return args.Error(0)
}

func newStaffService() (*Service, *mockJoinRequestRepo, *mockUserRepo, *mockBusinessRepo, *mockNotifier) {
	requests := new(mockJoinRequestRepo)
	users := new(mockUserRepo)
	businesses := new(mockBusinessRepo)
	notifs := new(mockNotifier)
	return NewService(requests, users, businesses, notifs), requests, users, businesses, notifs
}

func TestCreateJoinRequest_Success(t *testing.T) {
	svc, requests, _, businesses, _ := newStaffService()

	businesses.On("GetByID", mock.Anything, int64(2)).Return(&domain.Business{ID: 2}, nil)
	requests.On("FindPending", mock.Anything, int64(9), int64(2)).Return(nil, gorm.ErrRecordNotFound)
	requests.On("Create", mock.Anything, mock.AnythingOfType("*domain.JoinRequest")).Return(nil)

	j, err := svc.CreateJoinRequest(context.Background(), 9, CreateJoinRequest{
		BusinessID:         2,
		SupervisorUsername: "selam_owner",
		Role:               "Staff",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.JoinPending, j.Status)
	assert.Equal(t, domain.JoinRoleStaff, j.Role)
}

func TestCreateJoinRequest_InvalidRole(t *testing.T) {
	svc, _, _, _, _ := newStaffService()

	_, err := svc.CreateJoinRequest(context.Background(), 9, CreateJoinRequest{
		BusinessID:         2,
		SupervisorUsername: "selam_owner",
		Role:               "Janitor",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateJoinRequest_DuplicatePending(t *testing.T) {
	svc, requests, _, businesses, _ := newStaffService()

	businesses.On("GetByID", mock.Anything, int64(2)).Return(&domain.Business{ID: 2}, nil)
	requests.On("FindPending", mock.Anything, int64(9), int64(2)).
		Return(&domain.JoinRequest{ID: 3, Status: domain.JoinPending}, nil)

	_, err := svc.CreateJoinRequest(context.Background(), 9, CreateJoinRequest{
		BusinessID:         2,
		SupervisorUsername: "selam_owner",
		Role:               "Admin",
	})

	assert.ErrorIs(t, err, ErrDuplicateRequest)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolve_ApproveGrantsRole(t *testing.T) {
	svc, requests, users, businesses, notifs := newStaffService()

	pending := &domain.JoinRequest{
		ID:                 11,
		BusinessID:         2,
		UserID:             9,
		SupervisorUsername: "selam_owner",
		Role:               domain.JoinRoleAdmin,
		Status:             domain.JoinPending,
	}
	requests.On("GetByID", mock.Anything, int64(11)).Return(pending, nil)
	requests.On("Resolve", mock.Anything, int64(11), domain.JoinApproved).Return(nil)
	users.On("GrantRole", mock.Anything, int64(9), domain.RoleAdmin, int64(2)).Return(nil)
	businesses.On("GetByID", mock.Anything, int64(2)).Return(&domain.Business{ID: 2, Name: "Zemen Grill"}, nil)
	notifs.On("NotifyJoinRequestResolved", mock.Anything, int64(9), true, "Zemen Grill").Return(nil)

	_, err := svc.Resolve(context.Background(), 11, "selam_owner", true)

	assert.NoError(t, err)
	users.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestResolve_RejectNeverGrantsRole(t *testing.T) {
	svc, requests, users, businesses, notifs := newStaffService()

	pending := &domain.JoinRequest{
		ID:                 11,
		BusinessID:         2,
		UserID:             9,
		SupervisorUsername: "selam_owner",
		Role:               domain.JoinRoleStaff,
		Status:             domain.JoinPending,
	}
	requests.On("GetByID", mock.Anything, int64(11)).Return(pending, nil)
	requests.On("Resolve", mock.Anything, int64(11), domain.JoinRejected).Return(nil)
	businesses.On("GetByID", mock.Anything, int64(2)).Return(&domain.Business{ID: 2, Name: "Zemen Grill"}, nil)
	notifs.On("NotifyJoinRequestResolved", mock.Anything, int64(9), false, "Zemen Grill").Return(nil)

	_, err := svc.Resolve(context.Background(), 11, "selam_owner", false)

	assert.NoError(t, err)
	users.AssertNotCalled(t, "GrantRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_WrongSupervisorForbidden(t *testing.T) {
	svc, requests, _, _, _ := newStaffService()

	pending := &domain.JoinRequest{
		ID:                 11,
		SupervisorUsername: "selam_owner",
		Status:             domain.JoinPending,
	}
	requests.On("GetByID", mock.Anything, int64(11)).Return(pending, nil)

	_, err := svc.Resolve(context.Background(), 11, "someone_else", true)

	assert.ErrorIs(t, err, ErrForbidden)
	requests.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_AlreadyResolvedIsTerminal(t *testing.T) {
	svc, requests, _, _, _ := newStaffService()

	resolved := &domain.JoinRequest{
		ID:                 11,
		SupervisorUsername: "selam_owner",
		Status:             domain.JoinRejected,
	}
	requests.On("GetByID", mock.Anything, int64(11)).Return(resolved, nil)

	_, err := svc.Resolve(context.Background(), 11, "selam_owner", true)

	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolve_LostRaceReadsAsAlreadyResolved(t *testing.T) {
	svc, requests, _, _, _ := newStaffService()

	pending := &domain.JoinRequest{
		ID:                 11,
		SupervisorUsername: "selam_owner",
		Status:             domain.JoinPending,
	}
	requests.On("GetByID", mock.Anything, int64(11)).Return(pending, nil)
	requests.On("Resolve", mock.Anything, int64(11), domain.JoinApproved).Return(repository.ErrVersionConflict)

	_, err := svc.Resolve(context.Background(), 11, "selam_owner", true)

	assert.ErrorIs(t, err, ErrAlreadyResolved)
}
