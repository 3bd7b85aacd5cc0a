package countdown

import (
	"context"
	"sort"
	"sync"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
)

// manualLoop is a virtual-time EventLoop. Callbacks only run from Advance,
// and Do serializes with them the way the real loop goroutine would.
type manualLoop struct {
	exec sync.Mutex // held while loop-owned code runs

	mu      sync.Mutex
	now     coreport.Duration
	seq     int
	pending []scheduledCall
	delays  []coreport.Duration
}

type scheduledCall struct {
	at  coreport.Duration
	seq int
	fn  func()
}

func newManualLoop() *manualLoop {
	return &manualLoop{}
}

func (l *manualLoop) AfterFunc(d coreport.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.pending = append(l.pending, scheduledCall{at: l.now + d, seq: l.seq, fn: fn})
	l.delays = append(l.delays, d)
}

func (l *manualLoop) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.exec.Lock()
	defer l.exec.Unlock()
	fn()
	return nil
}

// Advance moves virtual time forward by d, running every callback that falls due
func (l *manualLoop) Advance(d coreport.Duration) {
	l.mu.Lock()
	target := l.now + d
	l.mu.Unlock()

	for {
		call, ok := l.popDue(target)
		if !ok {
			break
		}
		l.exec.Lock()
		call.fn()
		l.exec.Unlock()
	}

	l.mu.Lock()
	l.now = target
	l.mu.Unlock()
}

// RunUntilIdle advances until nothing is scheduled, up to limit callbacks
func (l *manualLoop) RunUntilIdle(limit int) int {
	ran := 0
	for ran < limit {
		call, ok := l.popDue(-1)
		if !ok {
			break
		}
		l.exec.Lock()
		call.fn()
		l.exec.Unlock()
		ran++
	}
	return ran
}

func (l *manualLoop) popDue(target coreport.Duration) (scheduledCall, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.pending) == 0 {
		return scheduledCall{}, false
	}
	sort.SliceStable(l.pending, func(i, j int) bool {
		if l.pending[i].at == l.pending[j].at {
			return l.pending[i].seq < l.pending[j].seq
		}
		return l.pending[i].at < l.pending[j].at
	})
	next := l.pending[0]
	if target >= 0 && next.at > target {
		return scheduledCall{}, false
	}
	l.pending = l.pending[1:]
	l.now = next.at
	return next, true
}

func (l *manualLoop) Now() coreport.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

func (l *manualLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

func (l *manualLoop) Delays() []coreport.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]coreport.Duration(nil), l.delays...)
}
