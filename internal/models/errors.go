package models

import "errors"

var (
	// ErrInvalidArgument marks bad caller input: non-positive sums,
	// same-account transfers, missing categories.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a limit that is absent or already expired.
	ErrNotFound = errors.New("not found")
	// ErrConflictingLimit marks an attempt to set a second active limit
	// for a category that already has one.
	ErrConflictingLimit = errors.New("active limit already exists")
	// ErrRateNotFound marks a conversion for which no exchange rate has
	// ever been observed.
	ErrRateNotFound = errors.New("exchange rate not found")
)
