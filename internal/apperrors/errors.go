package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every failure returned by the services wraps exactly one of these.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrJobNotFound     = fmt.Errorf("job %w", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrAlreadyApplied  = fmt.Errorf("%w: application already exists", ErrConflict)
	ErrEmailTaken      = fmt.Errorf("%w: email already registered", ErrConflict)
)

// ValidationError carries per-field detail for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, reason string) {
	e.Fields[field] = reason
}

// OrNil returns nil when no field has been flagged.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
