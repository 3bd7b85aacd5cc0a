package time

import (
	"context"
	"sync"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/usecase/countdown"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) *EventLoop {
	t.Helper()

	loop := NewEventLoop(logger.NewNoopLogger(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})
	return loop
}

func TestEventLoopDoSerializesCallers(t *testing.T) {
	loop := startLoop(t)
	ctx := context.Background()

	// counter is owned by the loop; the race detector flags any parallel access
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, loop.Do(ctx, func() { counter++ }))
		}()
	}
	wg.Wait()

	var got int
	require.NoError(t, loop.Do(ctx, func() { got = counter }))
	assert.Equal(t, 50, got)
}

func TestEventLoopAfterFunc(t *testing.T) {
	loop := startLoop(t)

	fired := make(chan time.Time, 1)
	start := time.Now()
	loop.AfterFunc(20*core.Millisecond, func() { fired <- time.Now() })

	select {
	case at := <-fired:
		assert.GreaterOrEqual(t, at.Sub(start), 20*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled callback did not fire")
	}
}

func TestEventLoopTimersShareTheLoop(t *testing.T) {
	loop := startLoop(t)
	ctx := context.Background()

	counter := 0
	for i := 0; i < 20; i++ {
		loop.AfterFunc(core.Millisecond, func() { counter++ })
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, loop.Do(ctx, func() { counter++ }))
	}

	assert.Eventually(t, func() bool {
		var got int
		_ = loop.Do(ctx, func() { got = counter })
		return got == 40
	}, 2*time.Second, 5*time.Millisecond)
}

func TestEventLoopSurvivesPanics(t *testing.T) {
	loop := startLoop(t)
	ctx := context.Background()

	err := loop.Do(ctx, func() { panic("boom") })
	assert.NoError(t, err)

	ran := false
	require.NoError(t, loop.Do(ctx, func() { ran = true }))
	assert.True(t, ran)
}

func TestEventLoopClosed(t *testing.T) {
	loop := NewEventLoop(logger.NewNoopLogger(), 1)
	loop.Close()
	loop.Close()

	err := loop.Do(context.Background(), func() {})
	assert.ErrorIs(t, err, errs.ErrLoopClosed)

	// Timers firing after close are dropped without blocking
	loop.AfterFunc(0, func() { t.Error("callback ran on a closed loop") })
	time.Sleep(20 * time.Millisecond)
}

func TestEventLoopDoHonorsContext(t *testing.T) {
	loop := NewEventLoop(logger.NewNoopLogger(), 1)
	defer loop.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEventLoopDrivesEngine(t *testing.T) {
	loop := startLoop(t)
	ctx := context.Background()

	engine, err := countdown.NewEngine("00:03", 10*core.Millisecond, loop)
	require.NoError(t, err)

	ticks := make(chan int64, 10)
	stopped := make(chan bool, 1)
	require.NoError(t, loop.Do(ctx, func() {
		engine.OnTick(func(remaining int64) { ticks <- remaining }).
			OnStop(func() { stopped <- engine.Running() })
		engine.Start()
		engine.Start()
	}))

	select {
	case running := <-stopped:
		assert.False(t, running)
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not complete")
	}

	close(ticks)
	var got []int64
	for v := range ticks {
		got = append(got, v)
	}
	assert.Equal(t, []int64{2, 1}, got)
}

func TestRealTimeProvider(t *testing.T) {
	tp := NewRealTimeProvider()

	now := tp.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.GreaterOrEqual(t, tp.Since(now.Add(-time.Second)), core.Second)

	ctx, cancel := tp.WithTimeout(context.Background(), 10*core.Millisecond)
	defer cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}
