package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// The detail view renders its empty state for it.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedFormState indicates a required form control is missing or unreadable.
	// The submission that hit it must be abandoned; partial filters are never sent.
	ErrMalformedFormState = errors.New("malformed form state")

	// ErrTransportFailure indicates a network or decoding failure talking to the backend.
	// Operations that fail with it are abandoned and never retried automatically.
	ErrTransportFailure = errors.New("transport failure")

	// ErrConflictingFeedback indicates a row was marked both relevant and non-relevant.
	// The row is excluded from the batch; the error is logged, not returned.
	ErrConflictingFeedback = errors.New("conflicting feedback")

	// ErrInvalidRating indicates a star rating outside 1..5.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidTransition indicates an event that the widget state machine cannot accept
	// in its current state.
	ErrInvalidTransition = errors.New("invalid state transition")
)
