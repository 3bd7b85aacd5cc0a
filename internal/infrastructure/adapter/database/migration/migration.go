package migration

import (
	"context"
	"errors"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// step is one schema version and the change that reaches it
type step struct {
	version string
	details string
	apply   func(ctx context.Context) error
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	indexMgr     *IndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		indexMgr:     NewIndexManager(db, logger),
	}
}

// steps lists every schema version in order
func (m *MigrationManager) steps() []step {
	return []step{
		{
			version: "1.0.0",
			details: "Create countdown_runs",
			apply: func(ctx context.Context) error {
				return m.db.WithContext(ctx).AutoMigrate(&model.CountdownRun{})
			},
		},
		{
			version: "1.1.0",
			details: "Index countdown_runs for listing and active lookups",
			apply:   m.indexMgr.CreateIndexes,
		},
	}
}

// MigrateAll applies every step newer than the stored schema version
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	pending := pendingSteps(currentVersion, m.steps())
	for _, s := range pending {
		m.logger.Info("Applying migration", map[string]any{
			"from":    currentVersion,
			"version": s.version,
			"details": s.details,
		})

		if err := s.apply(ctx); err != nil {
			m.logger.Error("Migration failed", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return err
		}
		if err := m.setVersion(ctx, s.version, s.details); err != nil {
			m.logger.Error("Failed to update schema version", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return err
		}
		currentVersion = s.version
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": currentVersion,
		"applied": len(pending),
	})
	return nil
}

// pendingSteps returns the steps after current; an unknown or empty version selects all
func pendingSteps(current string, steps []step) []step {
	for i, s := range steps {
		if s.version == current {
			return steps[i+1:]
		}
	}
	return steps
}

// GetCurrentVersion gets the latest applied migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc, id desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	migrationVersion := model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}

	return m.db.WithContext(ctx).Create(&migrationVersion).Error
}
