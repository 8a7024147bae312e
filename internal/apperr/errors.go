package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness or state conflict (HTTP 409).
var Conflict = errors.New("conflict")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// InvalidAmount is returned when a payout amount is zero, negative or has sub-cent precision.
var InvalidAmount = errors.New("invalid amount")

// InvalidMethod is returned when a payout method is not one of the known methods.
var InvalidMethod = errors.New("invalid payout method")

// DataUnavailable means the store could not be reached or answered with something unusable
// within the operation timeout.
var DataUnavailable = errors.New("data unavailable")

// FieldError attaches the offending field name to a validation error.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// Field wraps err with the name of the field it refers to.
func Field(name string, err error) error {
	return &FieldError{Field: name, Err: err}
}
