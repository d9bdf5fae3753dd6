package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested note does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a note belongs to another owner.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
