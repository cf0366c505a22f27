package domain

// Priority is a named tier attached to a slot, affecting its ordering and
// visibility. Higher Rank sorts first.
type Priority struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
	Rank int    `json:"rank"`
}

const (
	PriorityStandard = "standard"
	PriorityVIP      = "vip"
)
