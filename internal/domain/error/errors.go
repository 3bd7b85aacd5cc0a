package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidTimeFormat  = 4001
	CodeInvalidGranularity = 4002
	CodeInvalidCountdownID = 4003
	CodeInvalidRequest     = 4004
	CodeCountdownNotFound  = 4040
	CodeCountdownFinished  = 4090
	CodeTooManyActive      = 4290

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5030
)

// Base error types
var (
	// ErrInvalidTimeFormat is returned when a duration string is neither mm:ss nor hh:mm:ss
	ErrInvalidTimeFormat = errors.New("unsupported time format")

	// ErrInvalidGranularity is returned when a tick interval is negative
	ErrInvalidGranularity = errors.New("granularity must not be negative")

	// ErrInvalidCountdownID is returned when a countdown ID is not a valid UUID
	ErrInvalidCountdownID = errors.New("invalid countdown ID")

	// ErrCountdownNotFound is returned when the requested countdown doesn't exist
	ErrCountdownNotFound = errors.New("countdown not found")

	// ErrCountdownFinished is returned when starting a countdown that already stopped
	ErrCountdownFinished = errors.New("countdown already finished")

	// ErrTooManyActive is returned when the active countdown limit is reached
	ErrTooManyActive = errors.New("too many active countdowns")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrLoopClosed is returned when work is posted to an event loop that has stopped
	ErrLoopClosed = errors.New("event loop closed")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidTimeFormat):
		return CodeInvalidTimeFormat
	case errors.Is(err, ErrInvalidGranularity):
		return CodeInvalidGranularity
	case errors.Is(err, ErrInvalidCountdownID):
		return CodeInvalidCountdownID
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrCountdownNotFound):
		return CodeCountdownNotFound
	case errors.Is(err, ErrCountdownFinished):
		return CodeCountdownFinished
	case errors.Is(err, ErrTooManyActive):
		return CodeTooManyActive
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// FormatError reports a duration string that matches no supported time format
type FormatError struct {
	Input string
}

// Error implements the error interface for FormatError
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %q (expected mm:ss or hh:mm:ss)", ErrInvalidTimeFormat, e.Input)
}

// Is checks if the target error is an ErrInvalidTimeFormat
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidTimeFormat
}

// LogFields returns a map of fields for structured logging
func (e *FormatError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "format_error",
		"input":      e.Input,
		"error_code": CodeInvalidTimeFormat,
	}
}

// NewFormatError creates a new format error for the given input
func NewFormatError(input string) error {
	return &FormatError{Input: input}
}

// CountdownError represents an error related to a specific countdown
type CountdownError struct {
	CountdownID string
	State       string
	Reason      string
	Err         error
}

// Error implements the error interface for CountdownError
func (e *CountdownError) Error() string {
	return fmt.Sprintf("countdown %s (state: %s): %s - %v", e.CountdownID, e.State, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *CountdownError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *CountdownError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "countdown_error",
		"countdown_id": e.CountdownID,
		"state":        e.State,
		"reason":       e.Reason,
		"error":        e.Err.Error(),
		"error_code":   ErrorCode(e.Err),
	}
}

// NewCountdownError creates a detailed countdown error
func NewCountdownError(countdownID, state, reason string, err error) error {
	return &CountdownError{
		CountdownID: countdownID,
		State:       state,
		Reason:      reason,
		Err:         err,
	}
}

// IsFormatError checks if the error is a duration format error
func IsFormatError(err error) bool {
	return errors.Is(err, ErrInvalidTimeFormat)
}

// IsNotFoundError checks if the error is a "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrCountdownNotFound)
}
