package reservation

type CreateReservationRequest struct {
	TableID    int64  `json:"table_id" binding:"required" validate:"required"`
	BusinessID int64  `json:"business_id" binding:"required" validate:"required"`
	SlotID     *int64 `json:"slot_id"`
	PartySize  int    `json:"party_size" binding:"required" validate:"required,gte=1,lte=10"`
	Date       string `json:"date" binding:"required" validate:"required"`
	Time       string `json:"time" binding:"required" validate:"required"`
	Notes      string `json:"notes"`
}

// UpdateReservationRequest edits an active reservation. Nil fields keep
// their current value.
type UpdateReservationRequest struct {
	TableID   *int64  `json:"table_id"`
	PartySize *int    `json:"party_size"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Notes     *string `json:"notes"`
}

func (r *UpdateReservationRequest) isEmpty() bool {
	return r.TableID == nil && r.PartySize == nil && r.Date == nil &&
		r.Time == nil && r.Notes == nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason"`
}
