// Package repository mediates between handlers and the spreadsheet
// gateway: it parses rows into domain records through the read cache
// and runs the validated write algorithms. Sentinel errors and the
// ValidationError type let handlers map failures to HTTP statuses
// without inspecting message text.
package repository

import "errors"

// ErrUserExists is returned when account creation collides with an
// existing id (case-sensitive, after normalization). Handlers
// translate this into HTTP 409.
var ErrUserExists = errors.New("user id already exists")

// ErrUserNotFound is returned when an operation targets an id absent
// from the store, such as a height update. Handlers translate this
// into HTTP 404.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidRefresh is returned for unknown, expired or revoked
// refresh tokens.
var ErrInvalidRefresh = errors.New("invalid refresh token")

// ValidationError carries a human-readable, user-correctable message
// (bad date, weight out of range, empty id or password). It is a
// result value, not an exceptional condition: handlers return it
// inline with HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(msg string) error { return &ValidationError{Message: msg} }
