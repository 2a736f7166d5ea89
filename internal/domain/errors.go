package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel every input validation failure unwraps to.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes a single rejected input field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInputError creates a new InputError.
func NewInputError(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
