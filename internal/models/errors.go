package models

import "errors"

// Error taxonomy for the reconciliation engine. The closure service is the
// only layer that decides whether one of these is user-facing or operational;
// stores and the aggregator return them unwrapped or wrapped with %w, never
// swallowed.
var (
	// ErrNotFound means no closure record exists for the requested date.
	ErrNotFound = errors.New("closure record not found")

	// ErrInvalidTransition means a mutation violates the closure state
	// machine (closing a closed record, deleting a closed record, closing a
	// missing record). Not retryable.
	ErrInvalidTransition = errors.New("invalid closure transition")

	// ErrDataUnavailable means the underlying transaction source could not
	// be reached. Retryable by the caller; never retried internally.
	ErrDataUnavailable = errors.New("transaction source unavailable")

	// ErrDataCorruption means the store returned more than one record for a
	// single date. Never auto-repaired.
	ErrDataCorruption = errors.New("duplicate closure records for date")
)
