package core

import "errors"

// Error taxonomy surfaced to the API layer. Everything else bubbles up as a
// store error and maps to a plain 500.
var (
	// ErrEmployeeNotFound means the badge id has no matching employee record.
	// No state derivation happens after it.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrValidation means a required field was missing or malformed; no store
	// call was issued.
	ErrValidation = errors.New("validation failed")

	// ErrConfirmationRequired means a terminal status (Finished, EndOfShift)
	// was submitted without the explicit confirmation flag.
	ErrConfirmationRequired = errors.New("confirmation required")
)
