// Package apperrors defines the domain error taxonomy shared by repositories,
// services and controllers. Controllers translate these sentinels to HTTP
// statuses in one place (utils.FromError).
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing entities, parents and association targets.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput covers bad enum values, malformed lists, disallowed
	// MIME types and other validation failures raised at the boundary.
	ErrInvalidInput = errors.New("invalid input")
	// ErrTooLarge is a specialization of invalid input for oversized uploads.
	ErrTooLarge = errors.New("payload too large")
	// ErrConflict covers uniqueness violations (objective title, user email).
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized means the request carries no valid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the authenticated user may not touch the target.
	ErrForbidden = errors.New("forbidden")
	// ErrNotConfigured means a required external credential or model is missing.
	ErrNotConfigured = errors.New("service not configured")
	// ErrProvider covers failures reported by an external provider.
	ErrProvider = errors.New("provider error")
	// ErrTimeout means an external call exceeded its deadline.
	ErrTimeout = errors.New("timeout")
)

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// InvalidInputf wraps ErrInvalidInput with a formatted detail message.
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, args...)...)
}

// Conflictf wraps ErrConflict with a formatted detail message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}
