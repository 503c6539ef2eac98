package config

import (
	"errors"
	"fmt"

	"github.com/dshills/macrorec/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a value fails validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrTypeMismatch indicates the value type doesn't match the expected type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
	// Err is the category, ErrValidationFailed or ErrTypeMismatch.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns the error category.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidationFailed
	}
	return e.Err
}

func invalid(path, msg string, value any) *ValidationError {
	return &ValidationError{Path: path, Message: msg, Value: value, Err: ErrValidationFailed}
}

func mismatch(path, want string, value any) *ValidationError {
	return &ValidationError{
		Path:    path,
		Message: fmt.Sprintf("expected %s, got %T", want, value),
		Value:   value,
		Err:     ErrTypeMismatch,
	}
}
