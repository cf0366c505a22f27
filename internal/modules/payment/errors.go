package payment

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAmountMismatch   = errors.New("amount mismatch")
	ErrNotFound         = errors.New("payment order not found")
	ErrNotConfigured    = errors.New("payment credentials are not configured")
)
