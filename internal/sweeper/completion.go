package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/store"
)

// CompletionSweeperConfig holds configuration for the event completion sweeper
type CompletionSweeperConfig struct {
	BatchSize      int           // Events to complete per cycle
	WorkerPoolSize int           // Concurrent completions
	Interval       time.Duration // Time to sleep between sweep cycles
}

// completionSweeper implements the Sweeper interface for closing published
// events whose sales window has ended. Each completion runs in its own store
// transaction, so a crash mid-cycle leaves untouched events for the next run.
type completionSweeper struct {
	config    *CompletionSweeperConfig
	store     store.Store
	clock     adapter.Clock
	pool      pond.Pool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewCompletionSweeper creates a new event completion sweeper
func NewCompletionSweeper(
	config *CompletionSweeperConfig,
	st store.Store,
	clock adapter.Clock,
) Sweeper {
	return &completionSweeper{
		config:    config,
		store:     st,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *completionSweeper) Name() string {
	return "event-completion-sweeper"
}

// Start begins the sweeper's main loop
func (s *completionSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting event completion sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("interval", s.config.Interval),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Event completion sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Event completion sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *completionSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *completionSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping event completion sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Event completion sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Event completion sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *completionSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	// Published events whose sales window has closed
	events, err := s.store.ListExpiredPublishedEvents(ctx, startTime, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list expired events: %w", err)
	}

	if len(events) == 0 {
		// Sleep to avoid a tight loop while nothing is expiring
		if !s.sleep(ctx, s.config.Interval) {
			return ctx.Err() // Context canceled during sleep
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found expired published events", zap.Int("count", len(events)))

	// Track metrics
	var completedCount, skippedCount, failedCount atomic.Int32

	// Submit all completions to the worker pool; each runs in its own transaction
	for _, event := range events {
		s.pool.Submit(func() {
			_, err := s.store.TransitionEventStatus(ctx, store.TransitionEventStatusInput{
				EventID:    event.EventID,
				NextStatus: domain.EventStatusCompleted,
				Actor:      s.Name(),
			})
			switch {
			case err == nil:
				completedCount.Add(1)
				logger.InfoCtx(ctx, "Event completed",
					zap.String("event_id", event.EventID),
					zap.Time("end_time", event.EndTime),
				)
			case errors.Is(err, domain.ErrInvalidStatusChange), errors.Is(err, domain.ErrEventNotFound):
				// Another instance or the organizer got there first
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
				logger.ErrorCtx(ctx, err, zap.String("event_id", event.EventID))
			}
		})
	}

	// Wait for all completions to finish
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total", len(events)),
		zap.Int32("completed", completedCount.Load()),
		zap.Int32("skipped", skippedCount.Load()),
		zap.Int32("failed", failedCount.Load()),
	)

	// Sleep for a while to avoid tight loop
	if !s.sleep(ctx, s.config.Interval) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted by context
func (s *completionSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}
