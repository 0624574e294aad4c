package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrRunNotFound      = fmt.Errorf("%w: run", ErrNotFound)
	ErrTemplateNotFound = fmt.Errorf("%w: diagram template", ErrNotFound)

	// Validation errors
	ErrInvalidParameters = errors.New("invalid simulation parameters")
	ErrInvalidCode       = errors.New("invalid subset code")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewParameterError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameters, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}
