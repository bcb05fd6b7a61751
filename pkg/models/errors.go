package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for answer validation.
var (
	// ErrInvalidAnswers is matched by every *ValidationErrors value.
	ErrInvalidAnswers = errors.New("models: invalid answers")

	// ErrInvalidAppName indicates the application name does not match [a-zA-Z0-9-_]+.
	ErrInvalidAppName = errors.New("models: invalid app name")

	// ErrInvalidPackageManager indicates an unsupported package manager.
	ErrInvalidPackageManager = errors.New("models: invalid package manager")

	// ErrDuplicateScript indicates the same script was selected twice.
	ErrDuplicateScript = errors.New("models: duplicate script")
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is by checking contained validation errors against the target.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidAnswers {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}
