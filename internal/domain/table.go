package domain

import "time"

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableReserved  TableStatus = "reserved"
	TableOccupied  TableStatus = "occupied"
)

type Table struct {
	ID         int64       `json:"id"`
	BusinessID int64       `json:"business_id"`
	Label      string      `json:"label" validate:"required"`
	Capacity   int         `json:"capacity" validate:"required,gt=0"`
	Status     TableStatus `json:"status"`
	PosX       int         `json:"pos_x,omitempty"`
	PosY       int         `json:"pos_y,omitempty"`
	// Version is the optimistic-concurrency token. Every status change
	// bumps it; a reservation commit must re-check it.
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fits reports whether the table can seat the party.
func (t *Table) Fits(partySize int) bool {
	return t.Capacity >= partySize
}

// IsFree reports whether the table can accept a new reservation.
func (t *Table) IsFree() bool {
	return t.Status == TableAvailable
}
