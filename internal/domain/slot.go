package domain

import "time"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotReserved  SlotStatus = "reserved"
	SlotOccupied  SlotStatus = "occupied"
	SlotCancelled SlotStatus = "cancelled"
)

// CanTransitionTo encodes the slot state machine:
// available -> reserved -> occupied, available|reserved -> cancelled.
// An occupied slot must be vacated (back to available) before it can be
// cancelled. Cancelled is terminal.
func (s SlotStatus) CanTransitionTo(next SlotStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case SlotAvailable:
		return next == SlotReserved || next == SlotCancelled
	case SlotReserved:
		return next == SlotOccupied || next == SlotAvailable || next == SlotCancelled
	case SlotOccupied:
		return next == SlotAvailable
	default: // cancelled
		return false
	}
}

type Slot struct {
	ID         int64      `json:"id"`
	BusinessID int64      `json:"business_id" validate:"required"`
	StartTime  time.Time  `json:"start_time" validate:"required"`
	EndTime    time.Time  `json:"end_time" validate:"required"`
	Status     SlotStatus `json:"status"`
	// Capacity caps the number of concurrently active reservations inside
	// the window, independent of any single table's seating capacity.
	Capacity   int   `json:"capacity" validate:"required,gt=0"`
	PriorityID int64 `json:"priority_id"`
	Version    int64 `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Priority *Priority `json:"priority,omitempty"`
}

// IsBookable reports whether the slot can accept a new reservation.
func (s *Slot) IsBookable() bool {
	return s.Status == SlotAvailable || s.Status == SlotReserved
}
