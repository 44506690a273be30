package apperror

import (
	"errors"
	"net/http"
)

// Sentinels for the three failure classes. Typed errors below match them via errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("resource not found")
	ErrIO         = errors.New("io failure")
)

const (
	notFoundMessage = "Resource not found"
	internalMessage = "Internal server error"
)

// ValidationError reports malformed client input. Message is safe to return verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// IOError wraps an opaque storage or transport failure.
type IOError struct {
	Cause error
}

func (e *IOError) Error() string {
	if e.Cause == nil {
		return ErrIO.Error()
	}
	return e.Cause.Error()
}

func (e *IOError) Unwrap() error { return e.Cause }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// Validation builds a validation error with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// IO wraps cause as an IO failure. Already classified errors pass through unchanged.
func IO(cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrValidation) || errors.Is(cause, ErrNotFound) || errors.Is(cause, ErrIO) {
		return cause
	}
	return &IOError{Cause: cause}
}

// StatusCode maps err to the HTTP status of its class.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to a client.
// IO causes are never exposed.
func PublicMessage(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, ErrNotFound):
		return notFoundMessage
	default:
		return internalMessage
	}
}
