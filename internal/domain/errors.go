package domain

import "errors"

// Failure taxonomy shared by every channel. Services wrap these with
// fmt.Errorf("...: %w", err) so callers can match with errors.Is.
var (
	ErrNotFound            = errors.New("entity not found")
	ErrInactiveAccount     = errors.New("account is not active")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDuplicateIdentifier = errors.New("identifier already registered")
	ErrConcurrencyConflict = errors.New("concurrent update detected")
)
