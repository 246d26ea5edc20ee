// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// NotFoundError names the missing resource. It matches ErrNotFound.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ReferenceError reports a foreign key that points at no row. It matches
// ErrInvalidReference.
type ReferenceError struct {
	Resource string
	ID       uuid.UUID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %s does not exist", e.Resource, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidReference }

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
