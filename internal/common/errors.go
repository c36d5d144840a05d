// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid, expired or malformed token).
	ErrorInvalidToken       = errors.New("invalid token")
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Turn-engine errors. Transient from the caller's perspective; the
	// same request can be resubmitted as-is after one of these.
	ErrorEngine = errors.New("engine failure")
)
