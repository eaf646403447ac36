package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingData indicates the server accepted a request but the
	// response carried no data payload. The API contract guarantees a
	// payload on success, so callers treat this as a server fault.
	ErrMissingData = errors.New("response missing data payload")

	// ErrNotConfigured indicates the client has no API credentials.
	// Run folio auth before any workspace command.
	ErrNotConfigured = errors.New("not configured")

	// Authentication Errors.

	// ErrUnauthorized indicates the API token was rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the token lacks access to the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
