package common

import (
	"errors"
	"fmt"
)

// WrapError wraps an error with additional context information.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information.
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message.
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents a validation failure with field-specific information.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigurationError represents a fatal configuration problem. The run aborts
// before any site is processed when one of these surfaces.
type ConfigurationError struct {
	Section string
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Section != "" && e.Field != "":
		return fmt.Sprintf("configuration error in section '%s', field '%s': %s", e.Section, e.Field, e.Reason)
	case e.Section != "":
		return fmt.Sprintf("configuration error in section '%s': %s", e.Section, e.Reason)
	default:
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(section, field, reason string) *ConfigurationError {
	return &ConfigurationError{Section: section, Field: field, Reason: reason}
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// NetworkError represents a transport-level failure against a URL.
type NetworkError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *NetworkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("network error for '%s': %s: %v", e.URL, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("network error for '%s': %s", e.URL, e.Reason)
}

func (e *NetworkError) Unwrap() error {
	return e.Wrapped
}

// NewNetworkError creates a new network error.
func NewNetworkError(url, reason string, wrapped error) *NetworkError {
	return &NetworkError{URL: url, Reason: reason, Wrapped: wrapped}
}

// HTTPError represents a response with an unexpected status code.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("'%s' returned HTTP status %d", e.URL, e.StatusCode)
}

// NewHTTPError creates a new HTTP status error.
func NewHTTPError(url string, statusCode int) *HTTPError {
	return &HTTPError{URL: url, StatusCode: statusCode}
}
