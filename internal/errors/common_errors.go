package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInvalidArgument      ErrorType = "INVALID_ARGUMENT"
	ErrTypeNumericallyUndefined ErrorType = "NUMERICALLY_UNDEFINED"
	ErrTypeStructuralMismatch   ErrorType = "STRUCTURAL_MISMATCH"
	ErrTypeMissingDirectory     ErrorType = "MISSING_DIRECTORY"
	ErrTypeParsing              ErrorType = "PARSING"
	ErrTypeStorage              ErrorType = "STORAGE"
	ErrTypeValidation           ErrorType = "VALIDATION"
	ErrTypeConfig               ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Type, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError of the same type, so sentinel comparisons work
// regardless of message or context.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == "" && t.Cause == nil
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Sentinels for errors.Is comparisons by type
var (
	ErrInvalidArgument      = &AppError{Type: ErrTypeInvalidArgument}
	ErrNumericallyUndefined = &AppError{Type: ErrTypeNumericallyUndefined}
	ErrStructuralMismatch   = &AppError{Type: ErrTypeStructuralMismatch}
	ErrMissingDirectory     = &AppError{Type: ErrTypeMissingDirectory}
	ErrParsing              = &AppError{Type: ErrTypeParsing}
	ErrStorage              = &AppError{Type: ErrTypeStorage}
	ErrValidation           = &AppError{Type: ErrTypeValidation}
	ErrConfig               = &AppError{Type: ErrTypeConfig}
)

// Helper functions for common error types

// NewInvalidArgumentError creates an error for an out-of-contract input value
func NewInvalidArgumentError(argument string, value interface{}, message string) *AppError {
	return NewAppError(ErrTypeInvalidArgument, message, nil).
		WithContext("argument", argument).
		WithContext("value", value)
}

// NewNumericallyUndefinedError creates an error for a computation with no defined result
func NewNumericallyUndefinedError(message string) *AppError {
	return NewAppError(ErrTypeNumericallyUndefined, message, nil)
}

// NewStructuralMismatchError creates an error for a tabular file missing an expected column
func NewStructuralMismatchError(path, column string) *AppError {
	return NewAppError(ErrTypeStructuralMismatch, fmt.Sprintf("missing required column %q", column), nil).
		WithContext("path", path).
		WithContext("column", column)
}

// NewMissingDirectoryError creates an error for an absent input directory
func NewMissingDirectoryError(path string, cause error) *AppError {
	return NewAppError(ErrTypeMissingDirectory, "directory does not exist", cause).
		WithContext("path", path)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err or any error it wraps is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// ContextValue returns a context value from the first AppError in err's chain
func ContextValue(err error, key string) (interface{}, bool) {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return nil, false
	}
	v, ok := appErr.Context[key]
	return v, ok
}
