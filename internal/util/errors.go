// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("invalid user input")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoAccount           = errors.New("no account registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrFeedUnavailable     = errors.New("price feed unavailable")
	// Add more specific errors as needed
)

// IsError reports whether err matches target in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
