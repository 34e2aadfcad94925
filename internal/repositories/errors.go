package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates that a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidReference indicates a foreign key pointing at a missing row.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidInput indicates a record that cannot be stored as given.
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError names the record that could not be found.
type NotFoundError struct {
	Resource string
	Key      string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %v not found", e.Resource, e.Key, e.Value)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource, key string, value any) error {
	return &NotFoundError{Resource: resource, Key: key, Value: value}
}

// wrap adds op context and maps translated gorm constraint errors to the
// package sentinels.
func wrap(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidReference, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
