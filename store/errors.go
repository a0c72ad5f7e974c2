package store

import "errors"

var (
	// ErrNotFound is returned when a record doesn't exist.
	ErrNotFound = errors.New("storefront: record not found")

	// ErrAlreadyExists is returned when attempting to create a record with an existing ID.
	ErrAlreadyExists = errors.New("storefront: record already exists")

	// ErrDuplicateValue is returned when a unique constraint is violated at write time.
	ErrDuplicateValue = errors.New("storefront: duplicate value for unique field")
)
