package errors

import (
	"fmt"

	"github.com/realahmed45/future-bali-frontend/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrPrecondition is returned when a step cannot run with the draft it was given
type ErrPrecondition struct {
	Message string
}

func (e *ErrPrecondition) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "precondition failed"
}

// ErrReauthRequired is returned when the backend rejects the session mid-flow.
// Return is where navigation resumes after a successful login.
type ErrReauthRequired struct {
	Return domain.Location
}

func (e *ErrReauthRequired) Error() string {
	return fmt.Sprintf("re-authentication required to continue at %s", e.Return.Path)
}

// ErrInvalidStateTransition is returned when an invalid auth flow transition is attempted
type ErrInvalidStateTransition struct {
	From domain.AuthState
	To   domain.AuthState
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrUpstream is returned when the booking backend or email provider rejects a step.
// Message is safe to show the customer.
type ErrUpstream struct {
	Message string
	Err     error
}

func (e *ErrUpstream) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}
