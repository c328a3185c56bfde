package langbridge

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency indicates a required collaborator was not supplied.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrStoreUnavailable indicates the preference store could not be written.
	ErrStoreUnavailable = errors.New("preference store unavailable")
)

// Error codes for classified errors.
const (
	// ErrCodeConfiguration indicates invalid or incomplete configuration.
	ErrCodeConfiguration = "configuration"

	// ErrCodeStore indicates a preference store failure.
	ErrCodeStore = "store"

	// ErrCodeValidation indicates invalid input.
	ErrCodeValidation = "validation"

	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal = "internal"
)

// Error is a classified error with an optional cause.
type Error struct {
	// Code classifies the error.
	Code string

	// Message describes the error.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string, err error) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: message, Err: err}
}

// NewMissingDependencyError creates a configuration error for an absent
// required collaborator. It matches errors.Is(err, ErrMissingDependency).
func NewMissingDependencyError(dependency string) *Error {
	return &Error{
		Code:    ErrCodeConfiguration,
		Message: dependency + " is required",
		Err:     ErrMissingDependency,
	}
}

// NewStoreError creates a store error. It matches
// errors.Is(err, ErrStoreUnavailable).
func NewStoreError(message string, err error) *Error {
	if err == nil {
		err = ErrStoreUnavailable
	} else {
		err = fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return &Error{Code: ErrCodeStore, Message: message, Err: err}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, err error) *Error {
	return &Error{Code: ErrCodeValidation, Message: message, Err: err}
}
