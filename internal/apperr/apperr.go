// Package apperr defines the failure taxonomy shared by all services.
// Services wrap these sentinels with context; the HTTP layer maps them to
// status codes with errors.Is.
package apperr

import "errors"

var (
	// ErrInvalid marks malformed or missing input, detected before any
	// store access.
	ErrInvalid = errors.New("invalid input")

	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate license plate).
	ErrConflict = errors.New("conflict")
)
