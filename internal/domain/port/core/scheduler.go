package core

import "context"

// Scheduler runs a callback once after a delay.
// Implementations give no cancellation handle back to the caller.
type Scheduler interface {
	AfterFunc(d Duration, fn func())
}

// EventLoop is a Scheduler whose callbacks all run on a single goroutine.
// State owned by the loop must only be touched from inside Do or a scheduled callback.
type EventLoop interface {
	Scheduler

	// Do runs fn on the loop goroutine and waits for it to return
	Do(ctx context.Context, fn func()) error
}
