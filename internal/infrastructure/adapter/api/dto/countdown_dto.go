package dto

import (
	"time"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
)

// CreateCountdownRequest is the body of POST /countdowns
type CreateCountdownRequest struct {
	Duration      string `json:"duration" binding:"required"`
	GranularityMs int64  `json:"granularityMs"`
	AutoStart     bool   `json:"autoStart"`
	Label         string `json:"label" binding:"max=255"`
}

// CountdownResponse represents one countdown run in API responses
type CountdownResponse struct {
	ID                 string     `json:"id"`
	Label              string     `json:"label,omitempty"`
	Duration           string     `json:"duration"`
	Format             string     `json:"format"`
	GranularityMs      int64      `json:"granularityMs"`
	Remaining          int64      `json:"remaining"`
	RemainingFormatted string     `json:"remainingFormatted"`
	State              string     `json:"state"`
	CreatedAt          time.Time  `json:"createdAt"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	StoppedAt          *time.Time `json:"stoppedAt,omitempty"`
}

// CountdownListResponse is the body of GET /countdowns
type CountdownListResponse struct {
	Items  []CountdownResponse `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// NewCountdownResponse maps a run to its API representation
func NewCountdownResponse(run *entity.CountdownRun) CountdownResponse {
	return CountdownResponse{
		ID:                 run.ID,
		Label:              run.Label,
		Duration:           run.Duration,
		Format:             string(run.Format),
		GranularityMs:      run.GranularityMs,
		Remaining:          run.Remaining,
		RemainingFormatted: run.RemainingFormatted(),
		State:              string(run.State),
		CreatedAt:          run.CreatedAt,
		StartedAt:          run.StartedAt,
		StoppedAt:          run.StoppedAt,
	}
}
