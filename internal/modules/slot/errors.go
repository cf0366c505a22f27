package slot

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("slot not found")
	ErrBusinessNotFound  = errors.New("business not found")
	ErrPriorityNotFound  = errors.New("priority not found")
	ErrInvalidTransition = errors.New("invalid slot status transition")
	ErrSlotInUse         = errors.New("slot has active reservations")
)
