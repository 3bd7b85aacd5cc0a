package repository

import (
	"context"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// DefaultListLimit applies when List is called without a positive limit
	DefaultListLimit = 50
	// MaxListLimit caps the page size of List
	MaxListLimit = 500
)

// CountdownRepository implements persistence.CountdownRepository using GORM
type CountdownRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
	retryConfig database.RetryConfig
}

var _ persistence.CountdownRepository = (*CountdownRepository)(nil)

// NewCountdownRepository creates a new CountdownRepository instance
func NewCountdownRepository(db *gorm.DB, logger coreport.Logger) *CountdownRepository {
	return &CountdownRepository{
		db:          db,
		logger:      logger,
		errorMapper: database.NewErrorMapper(),
		retryConfig: database.DefaultRetryConfig(),
	}
}

// entityToModel converts a countdown run entity to a database model
func entityToModel(run *entity.CountdownRun) model.CountdownRun {
	return model.CountdownRun{
		ID:            run.ID,
		Label:         run.Label,
		Duration:      run.Duration,
		Format:        string(run.Format),
		TotalSeconds:  run.TotalSeconds,
		GranularityMs: run.GranularityMs,
		Remaining:     run.Remaining,
		State:         string(run.State),
		TickCount:     run.TickCount,
		CreatedAt:     run.CreatedAt,
		StartedAt:     run.StartedAt,
		StoppedAt:     run.StoppedAt,
	}
}

// modelToEntity converts a countdown run model to an entity
func modelToEntity(m *model.CountdownRun) *entity.CountdownRun {
	return &entity.CountdownRun{
		ID:            m.ID,
		Label:         m.Label,
		Duration:      m.Duration,
		Format:        entity.TimeFormat(m.Format),
		TotalSeconds:  m.TotalSeconds,
		GranularityMs: m.GranularityMs,
		Remaining:     m.Remaining,
		State:         entity.CountdownState(m.State),
		TickCount:     m.TickCount,
		CreatedAt:     m.CreatedAt,
		StartedAt:     m.StartedAt,
		StoppedAt:     m.StoppedAt,
	}
}

// Create saves a new countdown run
func (r *CountdownRepository) Create(ctx context.Context, run *entity.CountdownRun) error {
	r.logger.Debug("Creating countdown run", map[string]any{
		"countdown_id": run.ID,
		"duration":     run.Duration,
	})

	runModel := entityToModel(run)
	if err := r.db.WithContext(ctx).Create(&runModel).Error; err != nil {
		r.logger.Error("Failed to create countdown run", map[string]any{
			"countdown_id": run.ID,
			"error":        err.Error(),
		})
		return r.errorMapper.MapError(err, "create countdown")
	}

	return nil
}

// Update stores the progress and lifecycle fields of a run, retrying transient failures
func (r *CountdownRepository) Update(ctx context.Context, run *entity.CountdownRun) error {
	runModel := entityToModel(run)

	var rowsAffected int64
	err := database.RetryOnTransientError(ctx, r.retryConfig, func() error {
		result := r.db.WithContext(ctx).Model(&model.CountdownRun{}).
			Where("id = ?", run.ID).
			Updates(map[string]interface{}{
				"remaining":  runModel.Remaining,
				"state":      runModel.State,
				"tick_count": runModel.TickCount,
				"started_at": runModel.StartedAt,
				"stopped_at": runModel.StoppedAt,
			})
		rowsAffected = result.RowsAffected
		return result.Error
	}, r.errorMapper, r.logger)

	if err != nil {
		r.logger.Error("Failed to update countdown run", map[string]any{
			"countdown_id": run.ID,
			"error":        err.Error(),
		})
		return r.errorMapper.MapError(err, "update countdown")
	}

	if rowsAffected == 0 {
		r.logger.Warn("Countdown run not found during update", map[string]any{
			"countdown_id": run.ID,
		})
		return errs.ErrCountdownNotFound
	}

	r.logger.Debug("Countdown run updated", map[string]any{
		"countdown_id": run.ID,
		"state":        string(run.State),
		"remaining":    run.Remaining,
	})
	return nil
}

// GetByID retrieves a countdown run by its ID
func (r *CountdownRepository) GetByID(ctx context.Context, id string) (*entity.CountdownRun, error) {
	var runModel model.CountdownRun
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&runModel).Error; err != nil {
		mapped := r.errorMapper.MapError(err, "get countdown")
		if mapped != errs.ErrCountdownNotFound {
			r.logger.Error("Failed to get countdown run", map[string]any{
				"countdown_id": id,
				"error":        err.Error(),
			})
		}
		return nil, mapped
	}

	return modelToEntity(&runModel), nil
}

// List returns stored runs, newest first
func (r *CountdownRepository) List(ctx context.Context, limit, offset int) ([]*entity.CountdownRun, error) {
	limit, offset = normalizePage(limit, offset)

	var models []model.CountdownRun
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		r.logger.Error("Failed to list countdown runs", map[string]any{
			"limit":  limit,
			"offset": offset,
			"error":  err.Error(),
		})
		return nil, r.errorMapper.MapError(err, "list countdowns")
	}

	runs := make([]*entity.CountdownRun, 0, len(models))
	for i := range models {
		runs = append(runs, modelToEntity(&models[i]))
	}
	return runs, nil
}

// ListActive returns every run that has not stopped, oldest first.
// The state predicate matches the partial index idx_countdown_runs_active.
func (r *CountdownRepository) ListActive(ctx context.Context) ([]*entity.CountdownRun, error) {
	var models []model.CountdownRun
	err := r.db.WithContext(ctx).
		Where("state <> ?", string(entity.StateStopped)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		r.logger.Error("Failed to list active countdown runs", map[string]any{
			"error": err.Error(),
		})
		return nil, r.errorMapper.MapError(err, "list active countdowns")
	}

	runs := make([]*entity.CountdownRun, 0, len(models))
	for i := range models {
		runs = append(runs, modelToEntity(&models[i]))
	}
	return runs, nil
}

// normalizePage applies the default and maximum page size
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
