package services

import (
	"errors"
)

// Business-rule failures surfaced to the caller. Handlers map these to HTTP
// statuses; anything not in this list is treated as an internal error.
var (
	// ErrNotFound means a referenced entity is absent, or the caller has no
	// right to know whether it exists (ownership folded into the lookup)
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller lacks ownership of or the role for the entity
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState means the operation is not valid for the entity's current status
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput means a required field is missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict means a concurrent write was detected (zero affected rows on
	// a conditional update); callers may retry from a fresh read
	ErrConflict = errors.New("conflict")

	// ErrInsufficientStock means a purchase requested more units than available
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidAmount means a payment amount does not match the quote total
	// within the configured tolerance
	ErrInvalidAmount = errors.New("invalid amount")
)
