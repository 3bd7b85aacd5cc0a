package usecase

import (
	"context"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
)

// CreateCountdownRequest carries the parameters of a new countdown
type CreateCountdownRequest struct {
	Duration      string // "mm:ss" or "hh:mm:ss"
	GranularityMs int64  // Zero selects the configured default
	AutoStart     bool
	Label         string
}

// CountdownUseCase defines the countdown operations exposed to adapters
type CountdownUseCase interface {
	// Create validates the duration, persists a new run and optionally starts it
	// This is the core method used by the POST /countdowns endpoint
	Create(ctx context.Context, req CreateCountdownRequest) (*entity.CountdownRun, error)

	// Start starts an idle countdown; starting a running countdown is a no-op
	Start(ctx context.Context, id string) (*entity.CountdownRun, error)

	// Get returns the live snapshot of a countdown, or its stored record
	Get(ctx context.Context, id string) (*entity.CountdownRun, error)

	// List returns stored countdown runs, newest first
	List(ctx context.Context, limit, offset int) ([]*entity.CountdownRun, error)

	// Subscribe streams tick and stop events of an active countdown.
	// The channel is closed after the stop event or when cancel is called.
	Subscribe(ctx context.Context, id string) (<-chan entity.TickEvent, func(), error)
}
