package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager manages PostgreSQL-specific indexes on countdown_runs
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// indexStatements are idempotent so a partially applied step can be rerun
var indexStatements = map[string]string{
	"idx_countdown_runs_created_at": `
		CREATE INDEX IF NOT EXISTS idx_countdown_runs_created_at
		ON countdown_runs (created_at DESC)`,
	// Serves CountdownRepository.ListActive on startup
	"idx_countdown_runs_active": `
		CREATE INDEX IF NOT EXISTS idx_countdown_runs_active
		ON countdown_runs (id)
		WHERE state <> 'stopped'`,
}

// CreateIndexes creates the listing and active-run indexes
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	m.logger.Info("Creating countdown_runs indexes", nil)

	for _, name := range []string{"idx_countdown_runs_created_at", "idx_countdown_runs_active"} {
		if err := m.db.WithContext(ctx).Exec(indexStatements[name]).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": name,
				"error": err.Error(),
			})
			return err
		}
	}

	return nil
}
