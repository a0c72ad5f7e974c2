package validate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBody is returned when a payload is not a well-formed object.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrNoChange is returned when an update payload normalizes to zero
	// effective field changes.
	ErrNoChange = errors.New("no fields to update")
)

// FieldError reports that a specific field is missing, malformed, or out of
// the allowed range.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Reason
}

func missingField(field string) *FieldError {
	return &FieldError{Field: field, Reason: "missing: " + field}
}

func invalidField(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: fmt.Sprintf("invalid: %s %s", field, reason)}
}

// ConflictError reports a uniqueness violation on a constrained field.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	field := e.Field
	if field == "sku" {
		field = "SKU"
	}
	return fmt.Sprintf("%s with this %s already exists", e.Entity, field)
}

// ReferenceNotFoundError reports that a referenced record does not exist.
type ReferenceNotFoundError struct {
	Kind  string
	Value string
}

func (e *ReferenceNotFoundError) Error() string {
	if e.Kind == "product" {
		return fmt.Sprintf("product not found for sku %s", e.Value)
	}
	return e.Kind + " not found"
}
