package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
)

// CountdownState represents the lifecycle state of a countdown
type CountdownState string

// Countdown states
const (
	StateIdle    CountdownState = "idle"
	StateRunning CountdownState = "running"
	StateStopped CountdownState = "stopped"
)

// TickEventType distinguishes tick notifications from the final stop notification
type TickEventType string

// Tick event types
const (
	EventTick TickEventType = "tick"
	EventStop TickEventType = "stop"
)

// CountdownRun is the record of one countdown: its input, progress and lifecycle
type CountdownRun struct {
	ID            string         // UUID assigned on creation
	Label         string         // Optional caller-supplied name
	Duration      string         // Duration string exactly as supplied
	Format        TimeFormat     // Layout remembered from Duration
	TotalSeconds  int64          // Duration in seconds
	GranularityMs int64          // Interval between ticks in milliseconds
	Remaining     int64          // Last reported remaining seconds, never negative
	State         CountdownState // Lifecycle state
	TickCount     int64          // Number of ticks reported so far
	CreatedAt     time.Time      // When the countdown was created
	StartedAt     *time.Time     // When Start was first accepted (nullable)
	StoppedAt     *time.Time     // When the stop event fired (nullable)
}

// TickEvent is one notification fanned out to subscribers
type TickEvent struct {
	CountdownID        string        `json:"countdownId"`
	Type               TickEventType `json:"type"`
	Remaining          int64         `json:"remaining"`
	RemainingFormatted string        `json:"remainingFormatted"`
	At                 time.Time     `json:"at"`
}

// NewCountdownRun validates the duration string and creates an idle run record
func NewCountdownRun(
	id string,
	label string,
	duration string,
	granularityMs int64,
	timeProvider coreport.TimeProvider,
) (*CountdownRun, error) {
	if id == "" {
		return nil, errs.ErrInvalidCountdownID
	}
	if granularityMs < 0 {
		return nil, errs.ErrInvalidGranularity
	}

	seconds, format, err := ParseDuration(duration)
	if err != nil {
		return nil, err
	}

	return &CountdownRun{
		ID:            id,
		Label:         label,
		Duration:      duration,
		Format:        format,
		TotalSeconds:  seconds,
		GranularityMs: granularityMs,
		Remaining:     seconds,
		State:         StateIdle,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// RemainingFormatted renders Remaining in the run's original layout
func (r *CountdownRun) RemainingFormatted() string {
	return FormatDuration(r.Remaining, r.Format)
}

// MarkStarted moves an idle run to running
func (r *CountdownRun) MarkStarted(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	r.State = StateRunning
	r.StartedAt = &now
}

// RecordTick stores a reported remaining value
func (r *CountdownRun) RecordTick(remaining int64) {
	if remaining < 0 {
		remaining = 0
	}
	r.Remaining = remaining
	r.TickCount++
}

// MarkStopped moves the run to its terminal state
func (r *CountdownRun) MarkStopped(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	r.State = StateStopped
	r.Remaining = 0
	r.StoppedAt = &now
}

// MarkInterrupted stops a run whose countdown was lost with its process.
// Remaining keeps the last stored value so the record shows where it ended.
func (r *CountdownRun) MarkInterrupted(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	r.State = StateStopped
	r.StoppedAt = &now
}

// IsActive reports whether the run has not reached its terminal state
func (r *CountdownRun) IsActive() bool {
	return r.State != StateStopped
}

// Clone returns a copy that shares no pointers with r
func (r *CountdownRun) Clone() *CountdownRun {
	c := *r
	if r.StartedAt != nil {
		t := *r.StartedAt
		c.StartedAt = &t
	}
	if r.StoppedAt != nil {
		t := *r.StoppedAt
		c.StoppedAt = &t
	}
	return &c
}

// NewTickEvent builds the event for a tick or stop notification of run
func NewTickEvent(run *CountdownRun, eventType TickEventType, remaining int64, at time.Time) TickEvent {
	if remaining < 0 {
		remaining = 0
	}
	return TickEvent{
		CountdownID:        run.ID,
		Type:               eventType,
		Remaining:          remaining,
		RemainingFormatted: FormatDuration(remaining, run.Format),
		At:                 at,
	}
}
