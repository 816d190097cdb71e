package grievance

import "errors"

// Error taxonomy surfaced to handlers: not-found maps to 404, ownership
// mismatch to 403, validation to 400. None of these are retryable.
var (
	ErrNotFound   = errors.New("grievance not found")
	ErrNotOwner   = errors.New("user is not authorized to edit this grievance")
	ErrValidation = errors.New("missing required field")
)
