package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicate        = errors.New("duplicate resource")
	ErrInvalidInput     = errors.New("invalid input data")
	ErrInvalidReference = errors.New("referenced resource does not exist")
)

// FieldError ties a write failure to the wire field that caused it.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
