package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyQuery indicates the input was empty after trimming.
	// No request is sent for an empty query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrRequestPending indicates a request is already in flight.
	// The conversation accepts one submission at a time.
	ErrRequestPending = errors.New("request already pending")

	// ErrInvalidTopK indicates a top-k value outside the accepted range.
	ErrInvalidTopK = errors.New("top-k out of range")

	// ErrBackendUnavailable indicates the backend collaborator is not configured.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
