package reservation

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("reservation not found")
	ErrTableNotFound     = errors.New("table not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrConflict          = errors.New("reservation conflict")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrForbidden         = errors.New("forbidden")
)
