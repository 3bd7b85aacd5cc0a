package countdown

import (
	"context"
	"sync"

	"github.com/amirhossein-jamali/countdown-timer/internal/domain/entity"
	errs "github.com/amirhossein-jamali/countdown-timer/internal/domain/error"
	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/countdown-timer/internal/domain/port/usecase"
	"github.com/google/uuid"
)

// Config holds the tunables of the countdown service
type Config struct {
	DefaultGranularity coreport.Duration // Used when a request leaves granularity at zero
	Boundary           Boundary          // Zero-tick policy for every engine
	MaxActive          int               // Limit on idle+running countdowns; zero means unlimited
	PersistTicks       bool              // Store the remaining value on every tick
	PersistTimeout     coreport.Duration // Timeout of each repository write
	QueueSize          int               // Buffered persistence writes
	SubscriberBuffer   int               // Buffered events per subscriber
}

// DefaultConfig returns the service defaults
func DefaultConfig() Config {
	return Config{
		DefaultGranularity: DefaultGranularity,
		Boundary:           BoundaryExclusive,
		MaxActive:          1000,
		PersistTicks:       false,
		PersistTimeout:     5 * coreport.Second,
		QueueSize:          256,
		SubscriberBuffer:   16,
	}
}

// activeCountdown is the loop-owned state of one in-memory countdown
type activeCountdown struct {
	engine      *Engine
	run         *entity.CountdownRun
	subscribers map[int]chan entity.TickEvent
	nextSubID   int
}

// persistRequest is one queued repository write
type persistRequest struct {
	run   *entity.CountdownRun
	final bool
}

// Service manages countdown engines on a single event loop and records their runs.
// The active map and every engine are owned by the loop goroutine.
type Service struct {
	loop         coreport.EventLoop
	repo         persistence.CountdownRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config

	active map[string]*activeCountdown

	queue    chan persistRequest
	done     chan struct{}
	stopOnce sync.Once
	workerWG sync.WaitGroup
}

var _ usecase.CountdownUseCase = (*Service)(nil)

// NewCountdownService creates the service and starts its persistence worker
func NewCountdownService(
	loop coreport.EventLoop,
	repo persistence.CountdownRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Service {
	defaults := DefaultConfig()
	if config.DefaultGranularity <= 0 {
		config.DefaultGranularity = defaults.DefaultGranularity
	}
	if config.PersistTimeout <= 0 {
		config.PersistTimeout = defaults.PersistTimeout
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SubscriberBuffer <= 0 {
		config.SubscriberBuffer = defaults.SubscriberBuffer
	}

	s := &Service{
		loop:         loop,
		repo:         repo,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
		active:       make(map[string]*activeCountdown),
		queue:        make(chan persistRequest, config.QueueSize),
		done:         make(chan struct{}),
	}

	s.workerWG.Add(1)
	go s.persistWorker()

	return s
}

// Create validates the request, registers an engine and stores the new run
func (s *Service) Create(ctx context.Context, req usecase.CreateCountdownRequest) (*entity.CountdownRun, error) {
	if req.GranularityMs < 0 {
		return nil, errs.ErrInvalidGranularity
	}

	granularity := coreport.Milliseconds(req.GranularityMs)
	if granularity == 0 {
		granularity = s.config.DefaultGranularity
	}

	run, err := entity.NewCountdownRun(uuid.New().String(), req.Label, req.Duration, granularity.Milliseconds(), s.timeProvider)
	if err != nil {
		s.logger.Warn("Rejected countdown request", map[string]any{
			"duration": req.Duration,
			"error":    err.Error(),
		})
		return nil, err
	}

	engine, err := NewEngine(req.Duration, granularity, s.loop)
	if err != nil {
		return nil, err
	}
	engine.WithBoundary(s.config.Boundary)

	ac := &activeCountdown{
		engine:      engine,
		run:         run,
		subscribers: make(map[int]chan entity.TickEvent),
	}

	// Reserve a slot before touching the repository
	var loopErr error
	err = s.loop.Do(ctx, func() {
		if s.config.MaxActive > 0 && s.countActive() >= s.config.MaxActive {
			loopErr = errs.ErrTooManyActive
			return
		}
		s.register(ac)
	})
	if err != nil {
		return nil, err
	}
	if loopErr != nil {
		s.logger.Warn("Active countdown limit reached", map[string]any{
			"max_active": s.config.MaxActive,
		})
		return nil, loopErr
	}

	if err := s.repo.Create(ctx, run.Clone()); err != nil {
		s.logger.Error("Failed to store countdown", map[string]any{
			"countdown_id": run.ID,
			"error":        err.Error(),
		})
		_ = s.loop.Do(context.Background(), func() { delete(s.active, run.ID) })
		return nil, err
	}

	s.logger.Info("Countdown created", map[string]any{
		"countdown_id":   run.ID,
		"duration":       run.Duration,
		"format":         string(run.Format),
		"granularity_ms": run.GranularityMs,
		"auto_start":     req.AutoStart,
	})

	if req.AutoStart {
		return s.Start(ctx, run.ID)
	}

	var snapshot *entity.CountdownRun
	if err := s.loop.Do(ctx, func() { snapshot = ac.run.Clone() }); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Start starts an idle countdown. Starting a running countdown returns its snapshot.
func (s *Service) Start(ctx context.Context, id string) (*entity.CountdownRun, error) {
	var snapshot *entity.CountdownRun
	var loopErr error
	started := false

	err := s.loop.Do(ctx, func() {
		ac, ok := s.active[id]
		if !ok {
			loopErr = errs.ErrCountdownNotFound
			return
		}

		switch ac.run.State {
		case entity.StateStopped:
			loopErr = errs.NewCountdownError(id, string(ac.run.State), "cannot restart", errs.ErrCountdownFinished)
			return
		case entity.StateIdle:
			ac.engine.Start()
			ac.run.MarkStarted(s.timeProvider)
			s.enqueuePersist(ac.run, true)
			started = true
		}
		snapshot = ac.run.Clone()
	})
	if err != nil {
		return nil, err
	}

	if errs.IsNotFoundError(loopErr) {
		// Stopped runs are evicted once stored; idle and running ones may predate this process
		stored, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		run, err := s.adopt(ctx, stored)
		if err != nil {
			return nil, err
		}
		if run.State == entity.StateIdle {
			return s.Start(ctx, id)
		}
		return nil, errs.NewCountdownError(id, string(run.State), "no longer active", errs.ErrCountdownFinished)
	}
	if loopErr != nil {
		return nil, loopErr
	}

	if started {
		s.logger.Info("Countdown started", map[string]any{
			"countdown_id": id,
			"remaining":    snapshot.Remaining,
		})
	}
	return snapshot, nil
}

// Get returns the live snapshot of an in-memory countdown or its stored record
func (s *Service) Get(ctx context.Context, id string) (*entity.CountdownRun, error) {
	var snapshot *entity.CountdownRun
	err := s.loop.Do(ctx, func() {
		if ac, ok := s.active[id]; ok {
			snapshot = ac.run.Clone()
		}
	})
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		return snapshot, nil
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A stored idle run is accurate as is; Start brings it back into memory
	if stored.State == entity.StateRunning {
		return s.settleInterrupted(ctx, stored)
	}
	return stored, nil
}

// List returns stored runs with live progress overlaid for in-memory countdowns
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entity.CountdownRun, error) {
	runs, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	err = s.loop.Do(ctx, func() {
		for i, run := range runs {
			if ac, ok := s.active[run.ID]; ok {
				runs[i] = ac.run.Clone()
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Subscribe registers a buffered listener for the tick and stop events of a countdown
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan entity.TickEvent, func(), error) {
	var ch chan entity.TickEvent
	var subID int
	var loopErr error

	err := s.loop.Do(ctx, func() {
		ac, ok := s.active[id]
		if !ok {
			loopErr = errs.ErrCountdownNotFound
			return
		}
		if ac.run.State == entity.StateStopped {
			loopErr = errs.NewCountdownError(id, string(ac.run.State), "nothing left to stream", errs.ErrCountdownFinished)
			return
		}
		ch = make(chan entity.TickEvent, s.config.SubscriberBuffer)
		subID = ac.nextSubID
		ac.nextSubID++
		ac.subscribers[subID] = ch
	})
	if err != nil {
		return nil, nil, err
	}
	if errs.IsNotFoundError(loopErr) {
		stored, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		run, err := s.adopt(ctx, stored)
		if err != nil {
			return nil, nil, err
		}
		if run.State == entity.StateIdle {
			return s.Subscribe(ctx, id)
		}
		return nil, nil, errs.NewCountdownError(id, string(run.State), "nothing left to stream", errs.ErrCountdownFinished)
	}
	if loopErr != nil {
		return nil, nil, loopErr
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = s.loop.Do(context.Background(), func() {
				ac, ok := s.active[id]
				if !ok {
					return
				}
				if sub, ok := ac.subscribers[subID]; ok {
					delete(ac.subscribers, subID)
					close(sub)
				}
			})
		})
	}

	return ch, cancel, nil
}

// Reconcile settles stored runs that have no engine in this process.
// Idle runs get a fresh engine and can be started again; runs that were
// counting down when their process exited are stored as stopped.
// Call it once on startup, before serving requests.
func (s *Service) Reconcile(ctx context.Context) error {
	runs, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}

	inMemory := make(map[string]bool)
	err = s.loop.Do(ctx, func() {
		for id := range s.active {
			inMemory[id] = true
		}
	})
	if err != nil {
		return err
	}

	restored, interrupted, failed := 0, 0, 0
	for _, run := range runs {
		if inMemory[run.ID] {
			continue
		}
		settled, err := s.adopt(ctx, run)
		switch {
		case err != nil:
			failed++
			s.logger.Error("Failed to reconcile countdown", map[string]any{
				"countdown_id": run.ID,
				"state":        string(run.State),
				"error":        err.Error(),
			})
		case settled.State == entity.StateIdle:
			restored++
		default:
			interrupted++
		}
	}

	s.logger.Info("Stored countdowns reconciled", map[string]any{
		"restored":    restored,
		"interrupted": interrupted,
		"failed":      failed,
	})
	return nil
}

// Shutdown flushes queued writes and closes every subscriber stream.
// Countdowns still running keep ticking in memory but are no longer stored.
func (s *Service) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	_ = s.loop.Do(ctx, func() {
		for _, ac := range s.active {
			for subID, sub := range ac.subscribers {
				delete(ac.subscribers, subID)
				close(sub)
			}
		}
	})

	waitCh := make(chan struct{})
	go func() {
		s.workerWG.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		s.logger.Info("Countdown service stopped", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// register wires the engine callbacks and tracks the countdown; call on the loop
func (s *Service) register(ac *activeCountdown) {
	ac.engine.
		OnTick(func(remaining int64) { s.handleTick(ac, remaining) }).
		OnStop(func() { s.handleStop(ac) })
	s.active[ac.run.ID] = ac
}

// adopt takes over a stored run that has no engine in memory
func (s *Service) adopt(ctx context.Context, stored *entity.CountdownRun) (*entity.CountdownRun, error) {
	switch stored.State {
	case entity.StateIdle:
		return s.restoreIdle(ctx, stored)
	case entity.StateRunning:
		return s.settleInterrupted(ctx, stored)
	default:
		return stored, nil
	}
}

// restoreIdle rebuilds the engine of a stored idle run and tracks it again
func (s *Service) restoreIdle(ctx context.Context, stored *entity.CountdownRun) (*entity.CountdownRun, error) {
	engine, err := NewEngine(stored.Duration, coreport.Milliseconds(stored.GranularityMs), s.loop)
	if err != nil {
		return nil, err
	}
	engine.WithBoundary(s.config.Boundary)

	ac := &activeCountdown{
		engine:      engine,
		run:         stored.Clone(),
		subscribers: make(map[int]chan entity.TickEvent),
	}

	var snapshot *entity.CountdownRun
	restored := false
	err = s.loop.Do(ctx, func() {
		// A concurrent request may have restored it first
		if existing, ok := s.active[stored.ID]; ok {
			snapshot = existing.run.Clone()
			return
		}
		s.register(ac)
		snapshot = ac.run.Clone()
		restored = true
	})
	if err != nil {
		return nil, err
	}

	if restored {
		s.logger.Info("Idle countdown restored", map[string]any{
			"countdown_id": stored.ID,
			"duration":     stored.Duration,
		})
	}
	return snapshot, nil
}

// settleInterrupted stores a running run whose engine was lost as stopped
func (s *Service) settleInterrupted(ctx context.Context, stored *entity.CountdownRun) (*entity.CountdownRun, error) {
	run := stored.Clone()
	run.MarkInterrupted(s.timeProvider)

	if err := s.repo.Update(ctx, run); err != nil {
		s.logger.Error("Failed to store interrupted countdown", map[string]any{
			"countdown_id": run.ID,
			"error":        err.Error(),
		})
		return nil, err
	}

	s.logger.Warn("Countdown interrupted by a previous shutdown", map[string]any{
		"countdown_id": run.ID,
		"remaining":    run.Remaining,
	})
	return run, nil
}

// handleTick runs on the loop for every engine tick
func (s *Service) handleTick(ac *activeCountdown, remaining int64) {
	ac.run.RecordTick(remaining)
	s.publish(ac, entity.NewTickEvent(ac.run, entity.EventTick, remaining, s.timeProvider.Now()))

	s.logger.Debug("Countdown tick", map[string]any{
		"countdown_id": ac.run.ID,
		"remaining":    remaining,
		"formatted":    ac.run.RemainingFormatted(),
	})

	if s.config.PersistTicks {
		s.enqueuePersist(ac.run, false)
	}
}

// handleStop runs on the loop once the engine has reached its stopped state
func (s *Service) handleStop(ac *activeCountdown) {
	ac.run.MarkStopped(s.timeProvider)
	s.publish(ac, entity.NewTickEvent(ac.run, entity.EventStop, 0, s.timeProvider.Now()))

	for subID, sub := range ac.subscribers {
		delete(ac.subscribers, subID)
		close(sub)
	}

	s.logger.Info("Countdown finished", map[string]any{
		"countdown_id": ac.run.ID,
		"ticks":        ac.run.TickCount,
	})

	s.enqueuePersist(ac.run, true)
}

// publish delivers an event to every subscriber without blocking the loop
func (s *Service) publish(ac *activeCountdown, event entity.TickEvent) {
	for subID, sub := range ac.subscribers {
		select {
		case sub <- event:
		default:
			s.logger.Warn("Dropped countdown event for slow subscriber", map[string]any{
				"countdown_id":  ac.run.ID,
				"subscriber_id": subID,
				"event":         string(event.Type),
			})
		}
	}
}

// enqueuePersist queues a snapshot for the persistence worker.
// Tick writes are dropped when the queue is full; lifecycle writes wait.
func (s *Service) enqueuePersist(run *entity.CountdownRun, final bool) {
	req := persistRequest{run: run.Clone(), final: final}

	if !final {
		select {
		case s.queue <- req:
		default:
			s.logger.Debug("Persistence queue full, skipping tick write", map[string]any{
				"countdown_id": run.ID,
			})
		}
		return
	}

	select {
	case s.queue <- req:
	case <-s.done:
		s.logger.Warn("Service stopped, countdown state not stored", map[string]any{
			"countdown_id": run.ID,
			"state":        string(run.State),
		})
	}
}

// persistWorker writes queued snapshots in order until Shutdown
func (s *Service) persistWorker() {
	defer s.workerWG.Done()

	for {
		select {
		case req := <-s.queue:
			s.persist(req)
		case <-s.done:
			// Drain what is already queued
			for {
				select {
				case req := <-s.queue:
					s.persist(req)
				default:
					return
				}
			}
		}
	}
}

// persist stores one snapshot and evicts stopped runs from memory once stored
func (s *Service) persist(req persistRequest) {
	ctx, cancel := s.timeProvider.WithTimeout(context.Background(), s.config.PersistTimeout)
	defer cancel()

	if err := s.repo.Update(ctx, req.run); err != nil {
		s.logger.Error("Failed to store countdown progress", map[string]any{
			"countdown_id": req.run.ID,
			"state":        string(req.run.State),
			"error":        err.Error(),
		})
		return
	}

	if req.run.State != entity.StateStopped {
		return
	}

	// Bounded by ctx so a loop blocked on a full queue cannot stall the worker
	_ = s.loop.Do(ctx, func() {
		if ac, ok := s.active[req.run.ID]; ok && ac.run.State == entity.StateStopped {
			delete(s.active, req.run.ID)
		}
	})
}

// countActive counts countdowns that have not stopped; call on the loop
func (s *Service) countActive() int {
	n := 0
	for _, ac := range s.active {
		if ac.run.IsActive() {
			n++
		}
	}
	return n
}
