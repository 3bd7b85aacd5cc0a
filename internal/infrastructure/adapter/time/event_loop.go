package time

import (
	"context"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
)

// DefaultQueueSize is the number of callbacks that may wait for the loop goroutine
const DefaultQueueSize = 1024

// EventLoop runs every posted callback on a single goroutine.
// Timers fire on runtime goroutines and post their callback back here,
// so code driven by the loop never needs its own locking.
type EventLoop struct {
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
	logger    core.Logger
}

// NewEventLoop creates a loop; call Run to start processing
func NewEventLoop(logger core.Logger, queueSize int) *EventLoop {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &EventLoop{
		tasks:  make(chan func(), queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run processes callbacks until ctx is canceled or Close is called
func (l *EventLoop) Run(ctx context.Context) {
	defer l.Close()

	l.logger.Debug("Event loop started", nil)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("Event loop stopped", map[string]any{"reason": ctx.Err().Error()})
			return
		case <-l.done:
			l.logger.Debug("Event loop stopped", map[string]any{"reason": "closed"})
			return
		case fn := <-l.tasks:
			l.execute(fn)
		}
	}
}

// Close stops the loop. Pending and future callbacks are dropped.
func (l *EventLoop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed once the loop has stopped
func (l *EventLoop) Done() <-chan struct{} {
	return l.done
}

// AfterFunc posts fn to the loop once d has elapsed
func (l *EventLoop) AfterFunc(d core.Duration, fn func()) {
	time.AfterFunc(d.Std(), func() {
		if !l.post(fn) {
			l.logger.Debug("Dropped timer callback on closed event loop", map[string]any{
				"delay_ms": d.Milliseconds(),
			})
		}
	})
}

// Do runs fn on the loop goroutine and waits for it to finish.
// It must not be called from the loop goroutine itself.
func (l *EventLoop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.done:
		return errs.ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return errs.ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post queues fn, reporting false if the loop has stopped
func (l *EventLoop) post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// execute runs one callback, keeping the loop alive if it panics
func (l *EventLoop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Panic recovered in event loop callback", map[string]any{
				"error": r,
			})
		}
	}()
	fn()
}
