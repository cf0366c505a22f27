package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

const (
	MinPartySize = 1
	MaxPartySize = 10
)

type Reservation struct {
	ID         int64             `json:"id"`
	SlotID     *int64            `json:"slot_id,omitempty"`
	TableID    int64             `json:"table_id" validate:"required"`
	BusinessID int64             `json:"business_id" validate:"required"`
	CustomerID int64             `json:"customer_id" validate:"required"`
	PartySize  int               `json:"party_size" validate:"required,gte=1,lte=10"`
	Date       string            `json:"date"` // YYYY-MM-DD
	Time       string            `json:"time"` // 12-hour clock, e.g. "7:30 PM"
	Notes      string            `json:"notes,omitempty" gorm:"type:text"`
	Status     ReservationStatus `json:"status"`
	Price      int               `json:"price"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	CancelledAt *time.Time       `json:"cancelled_at,omitempty"`
}

// IsActive reports whether the reservation still holds its table.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// CanBeCancelled reports whether a cancellation is still permitted.
func (r *Reservation) CanBeCancelled() bool {
	return r.IsActive()
}

// CanBeEdited reports whether date/time/table/party-size edits are permitted.
func (r *Reservation) CanBeEdited() bool {
	return r.IsActive()
}

// CanBeCompleted reports whether the post-visit completion applies.
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == ReservationConfirmed
}
