package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorType represents the class of a database error
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// ErrorMapper classifies database errors and maps them to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// Classify returns the class of err, or an empty string if it is not recognised
func (m *ErrorMapper) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case m.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case m.IsTransientError(err):
		return TransientError
	case m.IsConnectionError(err):
		return ConnectionError
	case m.IsConstraintError(err):
		return ConstraintError
	}
	return ""
}

// IsDuplicateKeyError checks if err is a unique constraint violation
func (m *ErrorMapper) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// IsTransientError checks if err is transient and the operation can be retried
func (m *ErrorMapper) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "serialization") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "too many connections") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof")
}

// IsConnectionError checks if err is related to database connectivity
func (m *ErrorMapper) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection") ||
		strings.Contains(msg, "dial") ||
		strings.Contains(msg, "network") ||
		m.IsTransientError(err)
}

// IsConstraintError checks if err is a constraint violation
func (m *ErrorMapper) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint") ||
		strings.Contains(msg, "violates") ||
		strings.Contains(msg, "not null") ||
		m.IsDuplicateKeyError(err)
}

// MapError maps a database error raised by operation to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrCountdownNotFound
	}

	switch m.Classify(err) {
	case DuplicateKeyError, ConstraintError:
		return fmt.Errorf("%w: %s rejected by database", domainErr.ErrInvalidRequest, operation)
	case TransientError, ConnectionError:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrDatabaseConnection, operation, err.Error())
	default:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrInternalServer, operation, err.Error())
	}
}
