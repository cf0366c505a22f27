package reservation

import (
	"context"

	"tablebook/internal/domain"
)

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Reservation, error)
	CountActiveBySlot(ctx context.Context, slotID int64) (int, error)
	HasActiveForTableAt(ctx context.Context, tableID int64, date, timeOfDay string) (bool, error)
}

type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]domain.Table, error)
	ReserveWithVersion(ctx context.Context, tableID, version int64) error
	Release(ctx context.Context, tableID int64) error
}

type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	SetStatusWithVersion(ctx context.Context, id, version int64, status domain.SlotStatus) error
}

type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// NotificationSender decouples the reservation lifecycle from the ledger.
type NotificationSender interface {
	NotifyNewReservation(ctx context.Context, ownerUserID, reservationID int64, businessName string) error
	NotifyReservationConfirmed(ctx context.Context, customerID, reservationID int64) error
	NotifyReservationCancelled(ctx context.Context, customerID, reservationID int64, reason string) error
}
