package reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 101
	}
	return args.Error(0)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockReservationRepo) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Reservation, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	args := m.Called(ctx, slotID)
	return args.Int(0), args.Error(1)
}

func (m *mockReservationRepo) HasActiveForTableAt(ctx context.Context, tableID int64, date, timeOfDay string) (bool, error) {
	args := m.Called(ctx, tableID, date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

type mockTableRepo struct {
	mock.Mock
}

func (m *mockTableRepo) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

func (m *mockTableRepo) ListByBusiness(ctx context.Context, businessID int64) ([]domain.Table, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Table), args.Error(1)
}

func (m *mockTableRepo) ReserveWithVersion(ctx context.Context, tableID, version int64) error {
	args := m.Called(ctx, tableID, version)
	return args.Error(0)
}

func (m *mockTableRepo) Release(ctx context.Context, tableID int64) error {
	args := m.Called(ctx, tableID)
	return args.Error(0)
}

type mockSlotReader struct {
	mock.Mock
}

func (m *mockSlotReader) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *mockSlotReader) SetStatusWithVersion(ctx context.Context, id, version int64, status domain.SlotStatus) error {
	args := m.Called(ctx, id, version, status)
	return args.Error(0)
}

type mockBizRepo struct {
	mock.Mock
}

func (m *mockBizRepo) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyNewReservation(ctx context.Context, ownerUserID, reservationID int64, businessName string) error {
	args := m.Called(ctx, ownerUserID, reservationID, businessName)
	return args.Error(0)
}

func (m *mockNotifier) NotifyReservationConfirmed(ctx context.Context, customerID, reservationID int64) error {
	args := m.Called(ctx, customerID, reservationID)
	return args.Error(0)
}

func (m *mockNotifier) NotifyReservationCancelled(ctx context.Context, customerID, reservationID int64, reason string) error {
	args := m.Called(ctx, customerID, reservationID, reason)
	return args.Error(0)
}

type testDeps struct {
	reservations *mockReservationRepo
	tables       *mockTableRepo
	slots        *mockSlotReader
	businesses   *mockBizRepo
	notifs       *mockNotifier
}

func newReservationService() (*Service, testDeps) {
	d := testDeps{
		reservations: new(mockReservationRepo),
		tables:       new(mockTableRepo),
		slots:        new(mockSlotReader),
		businesses:   new(mockBizRepo),
		notifs:       new(mockNotifier),
	}
	return NewService(d.reservations, d.tables, d.slots, d.businesses, d.notifs), d
}

func TestCreateReservation_Success(t *testing.T) {
	svc, d := newReservationService()

	table := &domain.Table{ID: 7, BusinessID: 1, Capacity: 4, Status: domain.TableAvailable, Version: 3}
	d.tables.On("GetByID", mock.Anything, int64(7)).Return(table, nil)
	d.tables.On("ReserveWithVersion", mock.Anything, int64(7), int64(3)).Return(nil)
	d.reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	d.businesses.On("GetByID", mock.Anything, int64(1)).Return(&domain.Business{ID: 1, OwnerID: 50, Name: "Zemen Grill"}, nil)
	d.notifs.On("NotifyNewReservation", mock.Anything, int64(50), int64(101), "Zemen Grill").Return(nil)

	res, err := svc.CreateReservation(context.Background(), 9, CreateReservationRequest{
		TableID:    7,
		BusinessID: 1,
		PartySize:  3,
		Date:       "2026-09-05",
		Time:       "7:30 PM",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.Equal(t, 150, res.Price)
	d.notifs.AssertExpectations(t)
}

func TestCreateReservation_PartySizeBounds(t *testing.T) {
	svc, _ := newReservationService()

	for _, size := range []int{0, -1, 11} {
		_, err := svc.CreateReservation(context.Background(), 9, CreateReservationRequest{
			TableID:    7,
			BusinessID: 1,
			PartySize:  size,
			Date:       "2026-09-05",
			Time:       "7:30 PM",
		})
		assert.ErrorIs(t, err, ErrValidation, "party size %d", size)
	}
}

func TestCreateReservation_VersionConflict(t *testing.T) {
	svc, d := newReservationService()

	table := &domain.Table{ID: 7, BusinessID: 1, Capacity: 4, Status: domain.TableAvailable, Version: 3}
	d.tables.On("GetByID", mock.Anything, int64(7)).Return(table, nil)
	d.tables.On("ReserveWithVersion", mock.Anything, int64(7), int64(3)).Return(repository.ErrVersionConflict)

	_, err := svc.CreateReservation(context.Background(), 9, CreateReservationRequest{
		TableID:    7,
		BusinessID: 1,
		PartySize:  2,
		Date:       "2026-09-05",
		Time:       "7:30 PM",
	})

	assert.ErrorIs(t, err, ErrConflict)
	d.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservation_ReleasesTableWhenInsertFails(t *testing.T) {
	svc, d := newReservationService()

	table := &domain.Table{ID: 7, BusinessID: 1, Capacity: 4, Status: domain.TableAvailable, Version: 3}
	d.tables.On("GetByID", mock.Anything, int64(7)).Return(table, nil)
	d.tables.On("ReserveWithVersion", mock.Anything, int64(7), int64(3)).Return(nil)
	d.reservations.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	d.tables.On("Release", mock.Anything, int64(7)).Return(nil)

	_, err := svc.CreateReservation(context.Background(), 9, CreateReservationRequest{
		TableID:    7,
		BusinessID: 1,
		PartySize:  2,
		Date:       "2026-09-05",
		Time:       "7:30 PM",
	})

	assert.Error(t, err)
	d.tables.AssertCalled(t, "Release", mock.Anything, int64(7))
}

func TestCreateReservation_SlotAtCapacity(t *testing.T) {
	svc, d := newReservationService()

	slotID := int64(4)
	table := &domain.Table{ID: 7, BusinessID: 1, Capacity: 4, Status: domain.TableAvailable}
	d.tables.On("GetByID", mock.Anything, int64(7)).Return(table, nil)
	d.slots.On("GetByID", mock.Anything, slotID).Return(&domain.Slot{ID: slotID, BusinessID: 1, Status: domain.SlotReserved, Capacity: 2}, nil)
	d.reservations.On("CountActiveBySlot", mock.Anything, slotID).Return(2, nil)

	_, err := svc.CreateReservation(context.Background(), 9, CreateReservationRequest{
		TableID:    7,
		BusinessID: 1,
		SlotID:     &slotID,
		PartySize:  2,
		Date:       "2026-09-05",
		Time:       "7:30 PM",
	})

	var ne *NotEligibleError
	assert.ErrorAs(t, err, &ne)
	assert.Equal(t, ReasonNoAvailability, ne.Reason)
	d.tables.AssertNotCalled(t, "ReserveWithVersion", mock.Anything, mock.Anything, mock.Anything)
}

func TestEditReservation_GrowingPartyRechecksCapacity(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, TableID: 7, BusinessID: 1, CustomerID: 9, PartySize: 2, Date: "2026-09-05", Time: "7:30 PM", Status: domain.ReservationPending, Price: 100}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	d.tables.On("GetByID", mock.Anything, int64(7)).Return(&domain.Table{ID: 7, BusinessID: 1, Capacity: 2, Status: domain.TableReserved}, nil)

	six := 6
	_, err := svc.EditReservation(context.Background(), 1, 9, "customer", UpdateReservationRequest{PartySize: &six})

	var ne *NotEligibleError
	assert.ErrorAs(t, err, &ne)
	assert.Equal(t, ReasonCapacityExceeded, ne.Reason)
}

func TestEditReservation_ShrinkingPartyNeverRevalidates(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, TableID: 7, BusinessID: 1, CustomerID: 9, PartySize: 4, Date: "2026-09-05", Time: "7:30 PM", Status: domain.ReservationPending, Price: 200}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	d.reservations.On("Update", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)

	two := 2
	got, err := svc.EditReservation(context.Background(), 1, 9, "customer", UpdateReservationRequest{PartySize: &two})

	assert.NoError(t, err)
	assert.Equal(t, 2, got.PartySize)
	assert.Equal(t, 100, got.Price)
	d.tables.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestEditReservation_MovedWindowConflicts(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, TableID: 7, BusinessID: 1, CustomerID: 9, PartySize: 2, Date: "2026-09-05", Time: "7:30 PM", Status: domain.ReservationPending}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	d.reservations.On("HasActiveForTableAt", mock.Anything, int64(7), "2026-09-05", "9:00 PM").Return(true, nil)

	later := "9:00 PM"
	_, err := svc.EditReservation(context.Background(), 1, 9, "customer", UpdateReservationRequest{Time: &later})

	assert.ErrorIs(t, err, ErrConflict)
	d.reservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEditReservation_OtherCustomerForbidden(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, TableID: 7, BusinessID: 1, CustomerID: 9, PartySize: 2, Date: "2026-09-05", Time: "7:30 PM", Status: domain.ReservationPending}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)

	two := 2
	_, err := svc.EditReservation(context.Background(), 1, 42, "customer", UpdateReservationRequest{PartySize: &two})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancelReservation_ReleasesTableAndNotifies(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, TableID: 7, BusinessID: 1, CustomerID: 9, PartySize: 2, Status: domain.ReservationConfirmed}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	d.reservations.On("UpdateStatus", mock.Anything, int64(1), domain.ReservationCancelled).Return(nil)
	d.tables.On("Release", mock.Anything, int64(7)).Return(nil)
	d.notifs.On("NotifyReservationCancelled", mock.Anything, int64(9), int64(1), "running late").Return(nil)

	_, err := svc.CancelReservation(context.Background(), 1, 9, "customer", "running late")

	assert.NoError(t, err)
	d.tables.AssertCalled(t, "Release", mock.Anything, int64(7))
	d.notifs.AssertExpectations(t)
}

func TestCancelReservation_TerminalStateRejected(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, TableID: 7, CustomerID: 9, Status: domain.ReservationCancelled}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)

	_, err := svc.CancelReservation(context.Background(), 1, 9, "customer", "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	d.reservations.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmFromPayment_Idempotent(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, CustomerID: 9, Status: domain.ReservationConfirmed}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)

	assert.NoError(t, svc.ConfirmFromPayment(context.Background(), 1))
	d.reservations.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmFromPayment_PendingToConfirmed(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, CustomerID: 9, Status: domain.ReservationPending}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	d.reservations.On("UpdateStatus", mock.Anything, int64(1), domain.ReservationConfirmed).Return(nil)
	d.notifs.On("NotifyReservationConfirmed", mock.Anything, int64(9), int64(1)).Return(nil)

	assert.NoError(t, svc.ConfirmFromPayment(context.Background(), 1))
	d.notifs.AssertExpectations(t)
}

func TestConfirmFromPayment_CancelledRejected(t *testing.T) {
	svc, d := newReservationService()

	res := &domain.Reservation{ID: 1, CustomerID: 9, Status: domain.ReservationCancelled}
	d.reservations.On("GetByID", mock.Anything, int64(1)).Return(res, nil)

	assert.ErrorIs(t, svc.ConfirmFromPayment(context.Background(), 1), ErrInvalidTransition)
}

func TestListEligibleTables_UnknownBusiness(t *testing.T) {
	svc, d := newReservationService()

	d.businesses.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ListEligibleTables(context.Background(), 99, 2)

	assert.ErrorIs(t, err, ErrNotFound)
}
