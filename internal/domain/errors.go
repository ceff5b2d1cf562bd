package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Machine-readable conflict reasons carried to API clients on 409 responses.
const (
	ConflictAlreadyRegistered = "already_registered"
	ConflictEventFull         = "event_full"
	ConflictDeadlinePassed    = "deadline_passed"
)

// ValidationError marks input the caller can fix. Its message is safe to show
// to API clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ConflictError marks a request that lost against current state: a duplicate
// registration, a full event, or a passed deadline. Reason is one of the
// Conflict* constants.
type ConflictError struct {
	Reason  string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(reason, message string) *ConflictError {
	return &ConflictError{Reason: reason, Message: message}
}
