package domain

import (
	"errors"
	"fmt"
)

// The three ways a quote request fails. Sources wrap them in the typed
// errors below; callers branch with errors.Is or the Is helpers and never
// on HTTP status.
var (
	// ErrNotFound is a null query result: no such quote, no neighbour in
	// that direction, or an empty collection.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks an identifier that cannot name a quote, or a stored
	// record that is not a well-formed quote.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable means the source itself could not answer.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names what was missing. Entity is "quote" for a lookup and
// "quotes" when the collection is empty; ID may be blank.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}

	return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError returns a *NotFoundError.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError names the offending field. Value, when set, is the
// rejected input and is kept out of Error().
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a *ValidationError without a value.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue also records the rejected value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnavailableError identifies the failing source ("quote-api",
// "quotes-sqlite") and, optionally, why.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *UnavailableError) Unwrap() error { return ErrUnavailable }

// NewUnavailableError returns an *UnavailableError.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

func IsNotFound(err error) bool    { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool  { return errors.Is(err, ErrValidation) }
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }
