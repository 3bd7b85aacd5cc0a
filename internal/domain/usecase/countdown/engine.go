package countdown

import (
	"context"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/looplab/fsm"
)

// DefaultGranularity is the tick interval used when none is given
const DefaultGranularity = coreport.Second

// Engine state machine events
const (
	eventStart  = "start"
	eventFinish = "finish"
)

// Boundary selects whether a zero tick is reported before the stop event
type Boundary int

const (
	// BoundaryExclusive reports N-1 ... 1 and stops on the cycle that reaches zero
	BoundaryExclusive Boundary = iota
	// BoundaryInclusive also reports the 0 tick and stops one cycle later.
	// The first tick is still one granularity after Start, so N itself is never reported.
	BoundaryInclusive
)

// TickFunc receives the remaining whole seconds, never negative
type TickFunc func(remaining int64)

// StopFunc is called once when the countdown completes
type StopFunc func()

// Engine counts a duration down one second per granularity interval.
//
// An Engine is not safe for concurrent use. All calls, and every callback the
// scheduler fires, must happen on one goroutine; EventLoop provides that.
// There is no way to halt a started countdown before it completes.
type Engine struct {
	duration    int64
	format      entity.TimeFormat
	granularity coreport.Duration
	boundary    Boundary
	scheduler   coreport.Scheduler
	state       *fsm.FSM
	tickFuncs   []TickFunc
	stopFunc    StopFunc
}

// NewEngine parses duration and returns an idle engine.
// A granularity of zero or less selects DefaultGranularity.
func NewEngine(duration string, granularity coreport.Duration, scheduler coreport.Scheduler) (*Engine, error) {
	seconds, format, err := entity.ParseDuration(duration)
	if err != nil {
		return nil, err
	}

	if granularity <= 0 {
		granularity = DefaultGranularity
	}

	return &Engine{
		duration:    seconds,
		format:      format,
		granularity: granularity,
		scheduler:   scheduler,
		state: fsm.NewFSM(
			string(entity.StateIdle),
			fsm.Events{
				{Name: eventStart, Src: []string{string(entity.StateIdle)}, Dst: string(entity.StateRunning)},
				{Name: eventFinish, Src: []string{string(entity.StateRunning)}, Dst: string(entity.StateStopped)},
			},
			fsm.Callbacks{},
		),
	}, nil
}

// WithBoundary sets the zero-tick policy. It has no effect once started.
func (e *Engine) WithBoundary(boundary Boundary) *Engine {
	if e.state.Is(string(entity.StateIdle)) {
		e.boundary = boundary
	}
	return e
}

// OnTick appends fn to the tick observers. A nil fn is ignored.
func (e *Engine) OnTick(fn TickFunc) *Engine {
	if fn != nil {
		e.tickFuncs = append(e.tickFuncs, fn)
	}
	return e
}

// OnStop replaces the stop observer.
func (e *Engine) OnStop(fn StopFunc) *Engine {
	e.stopFunc = fn
	return e
}

// Start begins the countdown. The first tick fires one granularity later.
// Calling Start on a running or stopped engine does nothing.
func (e *Engine) Start() {
	if !e.state.Can(eventStart) {
		return
	}
	if err := e.state.Event(context.Background(), eventStart); err != nil {
		return
	}
	e.scheduler.AfterFunc(e.granularity, e.cycle)
}

// cycle is one scheduled step: decrement, then either tick and reschedule or stop
func (e *Engine) cycle() {
	e.duration--
	remaining := e.duration

	if remaining > e.threshold() {
		e.scheduler.AfterFunc(e.granularity, e.cycle)
		for _, fn := range e.tickFuncs {
			fn(remaining)
		}
		return
	}

	e.duration = 0
	// running -> stopped must be visible before the stop observer runs
	_ = e.state.Event(context.Background(), eventFinish)
	if e.stopFunc != nil {
		e.stopFunc()
	}
}

// threshold is the largest remaining value that ends the countdown
func (e *Engine) threshold() int64 {
	if e.boundary == BoundaryInclusive {
		return -1
	}
	return 0
}

// Remaining returns the remaining whole seconds, never negative
func (e *Engine) Remaining() int64 {
	if e.duration < 0 {
		return 0
	}
	return e.duration
}

// Format returns the layout the duration was given in
func (e *Engine) Format() entity.TimeFormat {
	return e.format
}

// Formatted renders the remaining time in the original layout
func (e *Engine) Formatted() string {
	return entity.FormatDuration(e.duration, e.format)
}

// Granularity returns the interval between ticks
func (e *Engine) Granularity() coreport.Duration {
	return e.granularity
}

// State returns the current lifecycle state
func (e *Engine) State() entity.CountdownState {
	return entity.CountdownState(e.state.Current())
}

// Running reports whether a countdown is scheduled
func (e *Engine) Running() bool {
	return e.state.Is(string(entity.StateRunning))
}
