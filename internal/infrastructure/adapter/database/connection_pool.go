package database

import (
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"gorm.io/gorm"
)

// PoolMetrics is a snapshot of connection pool statistics
type PoolMetrics struct {
	OpenConnections    int
	IdleConnections    int
	MaxOpenConnections int
	InUse              int
	WaitCount          int64
	WaitDuration       time.Duration
}

// PoolMonitor samples connection pool statistics and warns when the pool runs dry
type PoolMonitor struct {
	db       *gorm.DB
	logger   coreport.Logger
	mutex    sync.RWMutex
	metrics  PoolMetrics
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewPoolMonitor creates a new pool monitor
func NewPoolMonitor(db *gorm.DB, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start samples once and then every interval until Stop
func (m *PoolMonitor) Start(interval time.Duration) error {
	if err := m.collect(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collect(); err != nil {
					m.logger.Error("Failed to collect connection pool metrics", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop ends sampling; it is safe to call more than once
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

// Metrics returns the latest sample
func (m *PoolMonitor) Metrics() PoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.metrics
}

func (m *PoolMonitor) collect() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	m.metrics = PoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}
	m.mutex.Unlock()

	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > float64(stats.MaxOpenConnections)*0.8 {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}
