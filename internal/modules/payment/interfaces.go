package payment

import (
	"context"
	"time"

	"tablebook/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.PaymentOrder) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error)
	MarkPaidIdempotent(ctx context.Context, orderID, rawCallback string, paidAt time.Time) (bool, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.PaymentOrderStatus, rawCallback string) error
}

type ReservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// ReservationConfirmer moves a pending reservation to confirmed once its
// payment callback verifies.
type ReservationConfirmer interface {
	ConfirmFromPayment(ctx context.Context, reservationID int64) error
}
