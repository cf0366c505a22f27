package slot

import "time"

type CreateSlotRequest struct {
	BusinessID int64     `json:"business_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Status     string    `json:"status"`
	Capacity   int       `json:"capacity" binding:"required,gt=0"`
	Priority   string    `json:"priority" binding:"required"`
}

// UpdateSlotRequest is a partial update: nil fields stay untouched. At least
// one field must be supplied.
type UpdateSlotRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status"`
	Capacity  *int       `json:"capacity"`
	Priority  *string    `json:"priority"`
}

func (r *UpdateSlotRequest) isEmpty() bool {
	return r.StartTime == nil && r.EndTime == nil && r.Status == nil &&
		r.Capacity == nil && r.Priority == nil
}

type AvailabilityResponse struct {
	BusinessID      int64    `json:"business_id"`
	OpeningTime     string   `json:"opening_time"`
	ClosingTime     string   `json:"closing_time"`
	IntervalMinutes int      `json:"interval_minutes"`
	Times           []string `json:"times"`
}
