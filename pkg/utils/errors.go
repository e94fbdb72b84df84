package utils

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError describes a problem found in a machine definition
type ConfigurationError struct {
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	var parts []string

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %v", e.Cause))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates an error for configuration issues
func NewConfigurationError(path, message string) *ConfigurationError {
	return &ConfigurationError{
		Path:    path,
		Message: message,
	}
}

// WithCause adds cause information to the error
func (e *ConfigurationError) WithCause(err error) *ConfigurationError {
	e.Cause = err
	return e
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// ErrorCollector collects multiple errors during validation or processing
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// HasErrors returns whether any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// GetErrors returns all collected errors
func (ec *ErrorCollector) GetErrors() []error {
	return ec.errors
}

// Err returns the collector as an error, nil when nothing was collected
func (ec *ErrorCollector) Err() error {
	if !ec.HasErrors() {
		return nil
	}
	return ec
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (ec *ErrorCollector) Unwrap() []error {
	return ec.errors
}

// Error returns a string representation of all errors
func (ec *ErrorCollector) Error() string {
	if len(ec.errors) == 0 {
		return "no errors"
	}

	if len(ec.errors) == 1 {
		return ec.errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(ec.errors)))

	for i, err := range ec.errors {
		sb.WriteString(fmt.Sprintf("  %d: %v\n", i+1, err))
	}

	return sb.String()
}
