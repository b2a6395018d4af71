// Package common defines shared constants and sentinel errors used across
// the CloudSync client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport / service-level errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("server unavailable")

	// Session lifecycle errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionRestoring = errors.New("session restore in progress")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Validation errors (client-side form checks).
	ErrValidation = errors.New("validation error")

	// Local store errors.
	ErrLocalDataNotAvailable = errors.New("local data not available")
)
