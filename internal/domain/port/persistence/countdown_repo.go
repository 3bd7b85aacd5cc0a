package persistence

import (
	"context"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
)

// CountdownRepository defines the storage operations for countdown runs
type CountdownRepository interface {
	// Create stores a new countdown run
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, run *entity.CountdownRun) error

	// Update overwrites the progress and lifecycle fields of a stored run
	//
	// Possible errors:
	// - ErrCountdownNotFound: If the run doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, run *entity.CountdownRun) error

	// GetByID retrieves a countdown run by ID
	// Used for the GET /countdowns/{id} endpoint once a run is no longer in memory
	//
	// Possible errors:
	// - ErrCountdownNotFound: If the run doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.CountdownRun, error)

	// List returns runs ordered by creation time, newest first
	List(ctx context.Context, limit, offset int) ([]*entity.CountdownRun, error)

	// ListActive returns every run that has not stopped, oldest first.
	// Used on startup to settle runs left behind by a previous process.
	ListActive(ctx context.Context) ([]*entity.CountdownRun, error)
}
