package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates a backend call timed out.
	ExitErrorBackend  = 3   // Indicates the backend rejected or garbled a request.
	ExitErrorConfig   = 4   // Indicates a configuration or missing-input error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure detected locally,
// before any network call. It identifies which field failed validation and
// provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// TransportError reports a request that never produced a usable HTTP
// response: connection refused, DNS failure, canceled context.
type TransportError struct {
	// Endpoint is the backend path that was called (e.g. "/list_sheets/").
	Endpoint string
	// Cause is the underlying client error.
	Cause error
}

// Error returns a formatted message naming the endpoint and the cause.
func (e TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the underlying cause.
func (e TransportError) Unwrap() error { return e.Cause }

// DecodeError reports a response body that is not JSON or does not have the
// expected shape.
type DecodeError struct {
	Endpoint string
	Cause    error
}

// Error returns a formatted message naming the endpoint and the cause.
func (e DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.Endpoint, e.Cause)
}

// Unwrap returns the underlying cause.
func (e DecodeError) Unwrap() error { return e.Cause }

// StatusError reports a non-2xx response. Message carries the backend's
// {"error": "..."} text when the body has one.
type StatusError struct {
	Endpoint string
	Code     int
	Message  string
}

// Error returns a formatted message with the status code and backend message.
func (e StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.Code, e.Message)
}

// TimeoutError represents a backend call that exceeded the configured limit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code reported by the CLI.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		timeoutErr   TimeoutError
		configErr    ConfigError
		validateErr  ValidationError
		transportErr TransportError
		decodeErr    DecodeError
		statusErr    StatusError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validateErr):
		return ExitErrorConfig
	case errors.As(err, &transportErr), errors.As(err, &decodeErr), errors.As(err, &statusErr):
		return ExitErrorBackend
	default:
		return ExitErrorGeneric
	}
}
