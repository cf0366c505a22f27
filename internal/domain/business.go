package domain

import "time"

type Business struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	OpeningTime string     `json:"opening_time"` // 12-hour clock, e.g. "9:00 AM"
	ClosingTime string     `json:"closing_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`

	Tables []Table `json:"tables,omitempty"`
}
