package database

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
)

// RetryConfig holds configuration for retry operations
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // Extra random share of each interval (0.0-1.0)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: 50 * time.Millisecond,
		MaxInterval:   time.Second,
		JitterFactor:  0.2,
	}
}

// RetryOnTransientError runs operation until it succeeds, fails permanently,
// runs out of attempts or ctx is done
func RetryOnTransientError(
	ctx context.Context,
	config RetryConfig,
	operation func() error,
	errorMapper *ErrorMapper,
	logger coreport.Logger,
) error {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 1
	}

	var err error
	attempt := 0
	for ; attempt < config.MaxRetries; attempt++ {
		err = operation()
		if err == nil {
			return nil
		}
		if !errorMapper.IsTransientError(err) {
			return err
		}
		if attempt == config.MaxRetries-1 {
			break
		}

		backoff := calculateBackoffWithJitter(attempt, config)
		logger.Warn("Transient database error, retrying operation", map[string]any{
			"attempt":     attempt + 1,
			"max_retries": config.MaxRetries,
			"error":       err.Error(),
			"retry_after": backoff.String(),
		})

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			logger.Warn("Retry operation canceled by context", map[string]any{
				"attempts": attempt + 1,
				"error":    ctx.Err().Error(),
			})
			return ctx.Err()
		}
	}

	logger.Error("All retry attempts failed", map[string]any{
		"attempts": attempt + 1,
		"error":    err.Error(),
	})
	return err
}

// calculateBackoffWithJitter doubles the interval per attempt up to MaxInterval and adds jitter
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval * (1 << uint(attempt))
	if config.MaxInterval > 0 && backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		jitter := time.Duration(float64(backoff) * config.JitterFactor * (float64(time.Now().UnixNano()%100) / 100.0))
		backoff += jitter
	}

	return backoff
}
