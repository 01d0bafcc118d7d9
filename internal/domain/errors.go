package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrStorageUnavailable marks a failing backing service: the database,
	// the session store or Home Assistant.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Errors raised while parsing user input or running a capture. Each wraps
// a generic sentinel above.
var (
	ErrTenantNotFound = fmt.Errorf("tenant %w", ErrNotFound)
	ErrInvalidFormat  = fmt.Errorf("invalid format: %w", ErrValidation)
	ErrInvalidNumber  = fmt.Errorf("invalid number: %w", ErrValidation)
	ErrSessionLost    = errors.New("capture session lost")
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects the rejected fields of one input. The zero value
// is ready to use; Err returns nil while no field was added.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError rejects a single field.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ImportRowError is a rejected line of an imported file.
type ImportRowError struct {
	Line   int
	Reason string
}

func (e *ImportRowError) Error() string {
	return fmt.Sprintf("riga %d: %s", e.Line, e.Reason)
}
