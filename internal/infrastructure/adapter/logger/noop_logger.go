package logger

import (
	"sync/atomic"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
)

// NoopLogger discards every entry. It backs tests and the terminal CLI,
// where log lines would interleave with the countdown output.
type NoopLogger struct {
	level atomic.Int32
}

var _ core.Logger = (*NoopLogger)(nil)

// NewNoopLogger creates a logger that writes nothing
func NewNoopLogger() core.Logger {
	l := &NoopLogger{}
	l.level.Store(int32(core.LogLevelInfo))
	return l
}

// SetLevel records the level so GetLevel reports it back
func (l *NoopLogger) SetLevel(level core.LogLevel) {
	l.level.Store(int32(level))
}

// GetLevel returns the recorded level
func (l *NoopLogger) GetLevel() core.LogLevel {
	return core.LogLevel(l.level.Load())
}

func (l *NoopLogger) Debug(string, map[string]any) {}

func (l *NoopLogger) Info(string, map[string]any) {}

func (l *NoopLogger) Warn(string, map[string]any) {}

func (l *NoopLogger) Error(string, map[string]any) {}

// Flush has nothing to write
func (l *NoopLogger) Flush() error {
	return nil
}
