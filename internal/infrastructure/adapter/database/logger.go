package database

import (
	"context"
	"errors"
	"strings"
	"time"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSlowThreshold is the query duration above which a statement is logged as slow
const DefaultSlowThreshold = 200 * time.Millisecond

// DatabaseLogger is a GORM logger that writes through the core logger
type DatabaseLogger struct {
	coreLogger    coreport.Logger
	logLevel      logger.LogLevel
	slowThreshold time.Duration
	timeProvider  coreport.TimeProvider
}

var _ logger.Interface = (*DatabaseLogger)(nil)

// NewDatabaseLogger creates a database logger at the given level
// ("silent", "error", "warn", "info"; "debug" is treated as "info")
func NewDatabaseLogger(coreLogger coreport.Logger, timeProvider coreport.TimeProvider, level string) *DatabaseLogger {
	return &DatabaseLogger{
		coreLogger:    coreLogger,
		logLevel:      parseGormLevel(level),
		slowThreshold: DefaultSlowThreshold,
		timeProvider:  timeProvider,
	}
}

func parseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	default:
		return logger.Info
	}
}

// LogMode sets the log level for the logger
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

// WithSlowThreshold returns a copy with an updated slow query threshold
func (l *DatabaseLogger) WithSlowThreshold(threshold time.Duration) *DatabaseLogger {
	newLogger := *l
	newLogger.slowThreshold = threshold
	return &newLogger
}

// Info logs info messages
func (l *DatabaseLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Info {
		l.coreLogger.Info(msg, map[string]any{"source": "database", "data": data})
	}
}

// Warn logs warn messages
func (l *DatabaseLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.coreLogger.Warn(msg, map[string]any{"source": "database", "data": data})
	}
}

// Error logs error messages
func (l *DatabaseLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Error {
		l.coreLogger.Error(msg, map[string]any{"source": "database", "data": data})
	}
}

// Trace logs one executed SQL statement
func (l *DatabaseLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	var elapsed time.Duration
	if l.timeProvider != nil {
		elapsed = l.timeProvider.Since(begin).Std()
	} else {
		elapsed = time.Since(begin)
	}

	sql, rows := fc()
	fields := map[string]any{
		"elapsed": elapsed.String(),
		"rows":    rows,
		"sql":     sql,
		"source":  "database",
	}
	if queryType := extractQueryType(sql); queryType != "" {
		fields["type"] = queryType
	}
	if table := extractTableName(sql); table != "" {
		fields["table"] = table
	}

	// A missing row is an expected lookup result, not a failure
	notFound := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !notFound {
		fields["error"] = err.Error()
	}

	switch {
	case err != nil && !notFound && l.logLevel >= logger.Error:
		l.coreLogger.Error("SQL error", fields)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.logLevel >= logger.Warn:
		l.coreLogger.Warn("Slow SQL query", fields)
	case l.logLevel >= logger.Info:
		l.coreLogger.Debug("SQL query", fields)
	}
}

// extractQueryType returns the leading SQL verb
func extractQueryType(sql string) string {
	upper := strings.ToUpper(strings.TrimSpace(sql))
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "ALTER"} {
		if strings.HasPrefix(upper, verb) {
			return verb
		}
	}
	return ""
}

// extractTableName finds the table after FROM, INTO or UPDATE for simple statements
func extractTableName(sql string) string {
	trimmed := strings.TrimSpace(sql)
	upper := strings.ToUpper(trimmed)

	var start int
	switch {
	case strings.Contains(upper, " FROM "):
		start = strings.Index(upper, " FROM ") + len(" FROM ")
	case strings.Contains(upper, " INTO "):
		start = strings.Index(upper, " INTO ") + len(" INTO ")
	case strings.HasPrefix(upper, "UPDATE "):
		start = len("UPDATE ")
	default:
		return ""
	}

	remainder := strings.TrimSpace(trimmed[start:])
	if end := strings.IndexAny(remainder, " (\n"); end >= 0 {
		remainder = remainder[:end]
	}
	return strings.Trim(remainder, `"`)
}
