package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErr "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorMapper_Classify(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"Nil", nil, ""},
		{"Gorm duplicate", gorm.ErrDuplicatedKey, DuplicateKeyError},
		{"Postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "countdown_runs_pkey"`), DuplicateKeyError},
		{"Deadline", context.DeadlineExceeded, TransientError},
		{"Connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), TransientError},
		{"Dial", errors.New("dial tcp: lookup db: no such host"), ConnectionError},
		{"Not null", errors.New(`null value in column "duration" violates not-null constraint`), ConstraintError},
		{"Unknown", errors.New("syntax error at or near"), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mapper.Classify(tc.err))
		})
	}
}

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("Nil error", func(t *testing.T) {
		assert.NoError(t, mapper.MapError(nil, "get"))
	})

	t.Run("Record not found", func(t *testing.T) {
		err := mapper.MapError(fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), "get")
		assert.Equal(t, domainErr.ErrCountdownNotFound, err)
	})

	t.Run("Duplicate key", func(t *testing.T) {
		err := mapper.MapError(gorm.ErrDuplicatedKey, "create")
		assert.ErrorIs(t, err, domainErr.ErrInvalidRequest)
		assert.Contains(t, err.Error(), "create")
	})

	t.Run("Connection problem", func(t *testing.T) {
		err := mapper.MapError(errors.New("connection reset by peer"), "update")
		assert.ErrorIs(t, err, domainErr.ErrDatabaseConnection)
		assert.Equal(t, domainErr.CodeDatabaseConnection, domainErr.ErrorCode(err))
	})

	t.Run("Anything else", func(t *testing.T) {
		err := mapper.MapError(errors.New("syntax error"), "list")
		assert.ErrorIs(t, err, domainErr.ErrInternalServer)
	})
}
