package countdown

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/port/usecase"
	mockcore "github.com/amirhossein-jamali/countdown-timer/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/countdown-timer/mocks/port/persistence"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type serviceFixture struct {
	loop   *manualLoop
	repo   *mockpersistence.MockCountdownRepository
	logger *mockcore.MockLogger
	svc    *Service

	mu      sync.Mutex
	updates []*entity.CountdownRun
}

func newServiceFixture(t *testing.T, cfg Config) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		loop:   newManualLoop(),
		repo:   mockpersistence.NewMockCountdownRepository(t),
		logger: mockcore.NewMockLogger(t),
	}

	f.logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	f.logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	f.logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	f.logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	tp := mockcore.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(fixedNow).Maybe()
	tp.EXPECT().WithTimeout(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, d coreport.Duration) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, d.Std())
		}).Maybe()

	f.svc = NewCountdownService(f.loop, f.repo, tp, f.logger, cfg)
	t.Cleanup(func() {
		_ = f.svc.Shutdown(context.Background())
	})
	return f
}

// recordUpdates makes every Update succeed and keeps the stored snapshots
func (f *serviceFixture) recordUpdates() {
	f.repo.EXPECT().Update(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, run *entity.CountdownRun) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.updates = append(f.updates, run)
			return nil
		}).Maybe()
}

func (f *serviceFixture) storedUpdates() []*entity.CountdownRun {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entity.CountdownRun(nil), f.updates...)
}

func (f *serviceFixture) activeCount(t *testing.T) int {
	t.Helper()
	n := 0
	require.NoError(t, f.loop.Do(context.Background(), func() { n = len(f.svc.active) }))
	return n
}

func drain(ch <-chan entity.TickEvent) []entity.TickEvent {
	var events []entity.TickEvent
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores an idle run", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(run *entity.CountdownRun) bool {
			return run.Duration == "00:05" && run.State == entity.StateIdle
		})).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05", Label: "tea"})

		require.NoError(t, err)
		_, parseErr := uuid.Parse(run.ID)
		assert.NoError(t, parseErr)
		assert.Equal(t, "tea", run.Label)
		assert.Equal(t, entity.StateIdle, run.State)
		assert.Equal(t, int64(5), run.Remaining)
		assert.Equal(t, entity.TimeFormatMMSS, run.Format)
		assert.Equal(t, int64(1000), run.GranularityMs)
		assert.Equal(t, fixedNow, run.CreatedAt)
		assert.Nil(t, run.StartedAt)
		assert.Zero(t, f.loop.Pending())
	})

	t.Run("Custom granularity", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "01:00:00", GranularityMs: 250})

		require.NoError(t, err)
		assert.Equal(t, int64(250), run.GranularityMs)
		assert.Equal(t, entity.TimeFormatHHMMSS, run.Format)
		assert.Equal(t, "01:00:00", run.RemainingFormatted())
	})

	t.Run("Malformed duration", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "5:9"})

		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrInvalidTimeFormat)
		assert.True(t, errs.IsFormatError(err))
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Zero(t, f.activeCount(t))
	})

	t.Run("Negative granularity", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05", GranularityMs: -1})

		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrInvalidGranularity)
	})

	t.Run("Repository failure releases the slot", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxActive = 1
		f := newServiceFixture(t, cfg)
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection).Once()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Zero(t, f.activeCount(t))

		_, err = f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
		assert.NoError(t, err)
	})

	t.Run("Active limit", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxActive = 1
		f := newServiceFixture(t, cfg)
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
		require.NoError(t, err)

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrTooManyActive)
	})

	t.Run("Auto start", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05", AutoStart: true})

		require.NoError(t, err)
		assert.Equal(t, entity.StateRunning, run.State)
		require.NotNil(t, run.StartedAt)
		assert.Equal(t, fixedNow, *run.StartedAt)
		assert.Equal(t, 1, f.loop.Pending())
	})
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, DefaultConfig())
	f.recordUpdates()
	f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

	run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
	require.NoError(t, err)

	events, cancel, err := f.svc.Subscribe(ctx, run.ID)
	require.NoError(t, err)
	defer cancel()

	started, err := f.svc.Start(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateRunning, started.State)

	// Live progress is served from memory
	f.loop.Advance(2 * coreport.Second)
	live, err := f.svc.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), live.Remaining)
	assert.Equal(t, int64(2), live.TickCount)
	assert.Equal(t, "00:03", live.RemainingFormatted())

	f.loop.Advance(3 * coreport.Second)

	got := drain(events)
	require.Len(t, got, 5)
	var remaining []int64
	for _, ev := range got[:4] {
		assert.Equal(t, entity.EventTick, ev.Type)
		assert.Equal(t, run.ID, ev.CountdownID)
		remaining = append(remaining, ev.Remaining)
	}
	assert.Equal(t, []int64{4, 3, 2, 1}, remaining)
	assert.Equal(t, "00:01", got[3].RemainingFormatted)
	assert.Equal(t, entity.EventStop, got[4].Type)
	assert.Equal(t, "00:00", got[4].RemainingFormatted)

	_, open := <-events
	assert.False(t, open)

	require.NoError(t, f.svc.Shutdown(ctx))

	updates := f.storedUpdates()
	require.Len(t, updates, 2)
	assert.Equal(t, entity.StateRunning, updates[0].State)
	assert.Equal(t, int64(5), updates[0].Remaining)
	assert.Equal(t, entity.StateStopped, updates[1].State)
	assert.Equal(t, int64(0), updates[1].Remaining)
	assert.Equal(t, int64(4), updates[1].TickCount)
	require.NotNil(t, updates[1].StoppedAt)

	// Stored runs leave memory
	assert.Zero(t, f.activeCount(t))
}

func TestService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Idempotent", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
		require.NoError(t, err)

		first, err := f.svc.Start(ctx, run.ID)
		require.NoError(t, err)
		f.loop.Advance(coreport.Second)
		second, err := f.svc.Start(ctx, run.ID)
		require.NoError(t, err)

		assert.Equal(t, entity.StateRunning, first.State)
		assert.Equal(t, entity.StateRunning, second.State)
		assert.Equal(t, int64(4), second.Remaining)
		assert.Equal(t, 1, f.loop.Pending())
	})

	t.Run("Unknown countdown", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, errs.ErrCountdownNotFound).Once()

		run, err := f.svc.Start(ctx, "missing")

		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrCountdownNotFound)
	})

	t.Run("Finished countdown", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:01", AutoStart: true})
		require.NoError(t, err)
		f.loop.RunUntilIdle(10)

		// The run may already be evicted by the persistence worker
		stored := run.Clone()
		stored.State = entity.StateStopped
		f.repo.EXPECT().GetByID(mock.Anything, run.ID).Return(stored, nil).Maybe()

		again, err := f.svc.Start(ctx, run.ID)

		assert.Nil(t, again)
		assert.ErrorIs(t, err, errs.ErrCountdownFinished)
		assert.Zero(t, f.loop.Pending())
	})

	t.Run("Evicted countdown", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		stored := &entity.CountdownRun{ID: "done", State: entity.StateStopped}
		f.repo.EXPECT().GetByID(mock.Anything, "done").Return(stored, nil).Once()

		run, err := f.svc.Start(ctx, "done")

		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrCountdownFinished)
		var cdErr *errs.CountdownError
		require.True(t, errors.As(err, &cdErr))
		assert.Equal(t, "done", cdErr.CountdownID)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls back to the repository", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		stored := &entity.CountdownRun{ID: "old", State: entity.StateStopped}
		f.repo.EXPECT().GetByID(mock.Anything, "old").Return(stored, nil).Once()

		run, err := f.svc.Get(ctx, "old")

		require.NoError(t, err)
		assert.Same(t, stored, run)
	})

	t.Run("Not found", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, errs.ErrCountdownNotFound).Once()

		run, err := f.svc.Get(ctx, "missing")

		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrCountdownNotFound)
	})

	t.Run("Snapshots are copies", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
		require.NoError(t, err)
		run.Remaining = 99

		again, err := f.svc.Get(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), again.Remaining)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, DefaultConfig())
	f.recordUpdates()
	f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

	run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:10", AutoStart: true})
	require.NoError(t, err)
	f.loop.Advance(3 * coreport.Second)

	stale := run.Clone()
	other := &entity.CountdownRun{ID: "other", State: entity.StateStopped}
	f.repo.EXPECT().List(mock.Anything, 20, 0).Return([]*entity.CountdownRun{stale, other}, nil).Once()

	runs, err := f.svc.List(ctx, 20, 0)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(7), runs[0].Remaining)
	assert.Equal(t, int64(3), runs[0].TickCount)
	assert.Same(t, other, runs[1])

	t.Run("Repository error", func(t *testing.T) {
		f.repo.EXPECT().List(mock.Anything, 5, 5).Return(nil, errs.ErrDatabaseConnection).Once()

		runs, err := f.svc.List(ctx, 5, 5)

		assert.Nil(t, runs)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestService_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancel closes the stream", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05", AutoStart: true})
		require.NoError(t, err)

		events, cancel, err := f.svc.Subscribe(ctx, run.ID)
		require.NoError(t, err)

		f.loop.Advance(coreport.Second)
		cancel()
		cancel()
		f.loop.RunUntilIdle(10)

		got := drain(events)
		require.Len(t, got, 1)
		assert.Equal(t, int64(4), got[0].Remaining)
		_, open := <-events
		assert.False(t, open)
	})

	t.Run("Slow subscriber loses events", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SubscriberBuffer = 1
		f := newServiceFixture(t, cfg)
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:03", AutoStart: true})
		require.NoError(t, err)
		events, cancel, err := f.svc.Subscribe(ctx, run.ID)
		require.NoError(t, err)
		defer cancel()

		f.loop.RunUntilIdle(10)

		got := drain(events)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].Remaining)
		f.logger.AssertCalled(t, "Warn", "Dropped countdown event for slow subscriber", mock.Anything)
	})

	t.Run("Several subscribers", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:02", AutoStart: true})
		require.NoError(t, err)
		a, cancelA, err := f.svc.Subscribe(ctx, run.ID)
		require.NoError(t, err)
		defer cancelA()
		b, cancelB, err := f.svc.Subscribe(ctx, run.ID)
		require.NoError(t, err)
		defer cancelB()

		f.loop.RunUntilIdle(10)

		assert.Equal(t, drain(a), drain(b))
	})

	t.Run("Unknown countdown", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, errs.ErrCountdownNotFound).Once()

		events, cancel, err := f.svc.Subscribe(ctx, "missing")

		assert.Nil(t, events)
		assert.Nil(t, cancel)
		assert.ErrorIs(t, err, errs.ErrCountdownNotFound)
	})
}

func TestService_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("Tick writes", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.PersistTicks = true
		f := newServiceFixture(t, cfg)
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05", AutoStart: true})
		require.NoError(t, err)
		f.loop.RunUntilIdle(10)
		require.NoError(t, f.svc.Shutdown(ctx))

		var remaining []int64
		for _, run := range f.storedUpdates() {
			remaining = append(remaining, run.Remaining)
		}
		assert.Equal(t, []int64{5, 4, 3, 2, 1, 0}, remaining)
	})

	t.Run("Failed write keeps the run in memory", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
		f.repo.EXPECT().Update(mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection)

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:01", AutoStart: true})
		require.NoError(t, err)
		f.loop.RunUntilIdle(10)
		require.NoError(t, f.svc.Shutdown(ctx))

		got, err := f.svc.Get(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StateStopped, got.State)
		f.logger.AssertCalled(t, "Error", "Failed to store countdown progress", mock.Anything)
	})
}

func TestService_IndependentCountdowns(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, DefaultConfig())
	f.recordUpdates()
	f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Times(2)

	fast, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:02", GranularityMs: 500, AutoStart: true})
	require.NoError(t, err)
	slow, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:02", AutoStart: true})
	require.NoError(t, err)

	// The finished run may be served from memory or from its stored record
	stored := fast.Clone()
	stored.State = entity.StateStopped
	f.repo.EXPECT().GetByID(mock.Anything, fast.ID).Return(stored, nil).Maybe()

	f.loop.Advance(coreport.Second)

	fastRun, err := f.svc.Get(ctx, fast.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateStopped, fastRun.State)
	slowRun, err := f.svc.Get(ctx, slow.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StateRunning, slowRun.State)
	assert.Equal(t, int64(1), slowRun.Remaining)
}

// storedRun is a record left behind by an earlier process
func storedRun(id string, state entity.CountdownState) *entity.CountdownRun {
	created := fixedNow.Add(-time.Hour)
	run := &entity.CountdownRun{
		ID:            id,
		Duration:      "00:03",
		Format:        entity.TimeFormatMMSS,
		TotalSeconds:  3,
		GranularityMs: 1000,
		Remaining:     3,
		State:         state,
		CreatedAt:     created,
	}
	if state == entity.StateRunning {
		run.StartedAt = &created
	}
	return run
}

func TestService_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Restores idle runs and stops orphaned running runs", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().ListActive(mock.Anything).Return([]*entity.CountdownRun{
			storedRun("idle-1", entity.StateIdle),
			storedRun("run-1", entity.StateRunning),
		}, nil).Once()

		require.NoError(t, f.svc.Reconcile(ctx))

		assert.Equal(t, 1, f.activeCount(t))
		updates := f.storedUpdates()
		require.Len(t, updates, 1)
		assert.Equal(t, "run-1", updates[0].ID)
		assert.Equal(t, entity.StateStopped, updates[0].State)
		assert.Equal(t, int64(3), updates[0].Remaining)
		require.NotNil(t, updates[0].StoppedAt)
		assert.Equal(t, fixedNow, *updates[0].StoppedAt)

		run, err := f.svc.Start(ctx, "idle-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StateRunning, run.State)

		f.loop.Advance(coreport.Second)
		got, err := f.svc.Get(ctx, "idle-1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Remaining)
	})

	t.Run("Leaves runs of this process alone", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

		run, err := f.svc.Create(ctx, usecase.CreateCountdownRequest{Duration: "00:05"})
		require.NoError(t, err)
		f.repo.EXPECT().ListActive(mock.Anything).Return([]*entity.CountdownRun{run}, nil).Once()

		require.NoError(t, f.svc.Reconcile(ctx))

		assert.Empty(t, f.storedUpdates())
		assert.Equal(t, 1, f.activeCount(t))
	})

	t.Run("Repository error", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().ListActive(mock.Anything).Return(nil, errs.ErrDatabaseConnection).Once()

		err := f.svc.Reconcile(ctx)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("Failed settle is logged and skipped", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().ListActive(mock.Anything).Return([]*entity.CountdownRun{
			storedRun("run-1", entity.StateRunning),
			storedRun("idle-1", entity.StateIdle),
		}, nil).Once()
		f.repo.EXPECT().Update(mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection).Once()

		require.NoError(t, f.svc.Reconcile(ctx))

		assert.Equal(t, 1, f.activeCount(t))
		f.logger.AssertCalled(t, "Error", "Failed to reconcile countdown", mock.Anything)
	})
}

func TestService_StoredOrphans(t *testing.T) {
	ctx := context.Background()

	t.Run("Start on a stored idle run starts it", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().GetByID(mock.Anything, "idle-1").Return(storedRun("idle-1", entity.StateIdle), nil).Once()

		run, err := f.svc.Start(ctx, "idle-1")

		require.NoError(t, err)
		assert.Equal(t, entity.StateRunning, run.State)
		assert.Equal(t, int64(3), run.Remaining)
		assert.Equal(t, 1, f.loop.Pending())
	})

	t.Run("Start on a stored running run reports it finished", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().GetByID(mock.Anything, "run-1").Return(storedRun("run-1", entity.StateRunning), nil).Once()

		run, err := f.svc.Start(ctx, "run-1")

		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrCountdownFinished)
		updates := f.storedUpdates()
		require.Len(t, updates, 1)
		assert.Equal(t, entity.StateStopped, updates[0].State)
		assert.Zero(t, f.loop.Pending())
	})

	t.Run("Get settles a stored running run", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().GetByID(mock.Anything, "run-1").Return(storedRun("run-1", entity.StateRunning), nil).Once()

		run, err := f.svc.Get(ctx, "run-1")

		require.NoError(t, err)
		assert.Equal(t, entity.StateStopped, run.State)
		assert.Equal(t, int64(3), run.Remaining)
		require.NotNil(t, run.StoppedAt)
		assert.Len(t, f.storedUpdates(), 1)
	})

	t.Run("Get keeps a stored idle run in storage", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().GetByID(mock.Anything, "idle-1").Return(storedRun("idle-1", entity.StateIdle), nil).Once()

		run, err := f.svc.Get(ctx, "idle-1")

		require.NoError(t, err)
		assert.Equal(t, entity.StateIdle, run.State)
		assert.Zero(t, f.activeCount(t))
	})

	t.Run("Get fails when the settle write fails", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.repo.EXPECT().GetByID(mock.Anything, "run-1").Return(storedRun("run-1", entity.StateRunning), nil).Once()
		f.repo.EXPECT().Update(mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection).Once()

		run, err := f.svc.Get(ctx, "run-1")

		assert.Nil(t, run)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("Subscribe on a stored idle run", func(t *testing.T) {
		f := newServiceFixture(t, DefaultConfig())
		f.recordUpdates()
		f.repo.EXPECT().GetByID(mock.Anything, "idle-1").Return(storedRun("idle-1", entity.StateIdle), nil).Once()

		events, cancel, err := f.svc.Subscribe(ctx, "idle-1")
		require.NoError(t, err)
		defer cancel()

		_, err = f.svc.Start(ctx, "idle-1")
		require.NoError(t, err)
		f.loop.RunUntilIdle(10)

		got := drain(events)
		require.Len(t, got, 3)
		assert.Equal(t, int64(2), got[0].Remaining)
		assert.Equal(t, entity.EventStop, got[2].Type)
	})
}
