// Package relay pumps the append-only receipts journal out to NATS JetStream.
//
// Receipts are written in the same database transaction as the state change
// they describe. The relay reads them back in cursor order after commit and
// republishes anything past the persisted cursor, which gives consumers an
// at-least-once feed; they deduplicate on the receipt id.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/messaging"
	"github.com/feral-file/ff-boxoffice/internal/store"
	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

// Config holds the configuration for the receipt relay
type Config struct {
	BatchSize       int           // Receipts to read per cycle
	WorkerPoolSize  int           // Concurrent publishes within a batch
	PollInterval    time.Duration // Time to sleep when the journal is drained
	CursorSaveFreq  int64         // Save cursor every N receipts
	CursorSaveDelay time.Duration // Or save cursor every N seconds
}

// Relay defines the interface for the receipt relay
//
//go:generate mockgen -source=relay.go -destination=../mocks/relay.go -package=mocks -mock_names=Relay=MockRelay
type Relay interface {
	// Start begins the relay's main loop
	Start(ctx context.Context) error
	// Stop gracefully stops the relay with timeout support
	Stop(ctx context.Context) error
}

// relay reads receipts past the cursor and hands them to the publisher.
// The cursor is persisted periodically rather than per batch, so a crash
// replays the tail of the journal on the next start.
type relay struct {
	config    *Config
	store     store.Store
	cursor    store.CursorStore
	publisher messaging.Publisher
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}

	position        int64 // Cursor of the last receipt handed to the publisher
	lastSavedCursor int64 // Cursor most recently persisted
	lastSaveTime    time.Time
}

// NewRelay creates a new receipt relay
func NewRelay(
	config *Config,
	st store.Store,
	cursor store.CursorStore,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Relay {
	return &relay{
		config:    config,
		store:     st,
		cursor:    cursor,
		publisher: publisher,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Start begins the relay's main loop
func (r *relay) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("relay already running")
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh) // Signal that we've stopped
	}()

	// Resume from the last persisted cursor
	cursor, err := r.cursor.GetReceiptCursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to get receipt cursor: %w", err)
	}
	r.position = cursor
	r.lastSavedCursor = cursor
	r.lastSaveTime = r.clock.Now()

	logger.InfoCtx(ctx, "Starting receipt relay",
		zap.Int64("cursor", cursor),
		zap.Int("batch_size", r.config.BatchSize),
		zap.Int("worker_pool_size", r.config.WorkerPoolSize),
		zap.Duration("poll_interval", r.config.PollInterval),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Receipt relay stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Receipt relay stop requested")
			return nil
		default:
			if err := r.runCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// Stop gracefully stops the relay with timeout support
func (r *relay) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping receipt relay")

	// Signal stop to the main loop
	close(r.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Receipt relay stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Receipt relay stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCycle reads and publishes one batch of receipts
func (r *relay) runCycle(ctx context.Context) error {
	receipts, err := r.store.GetReceiptsAfterCursor(ctx, r.position, r.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to read receipts after cursor %d: %w", r.position, err)
	}

	if len(receipts) == 0 {
		// Journal drained, wait for new receipts
		if !r.sleep(ctx, r.config.PollInterval) {
			return ctx.Err() // Context canceled during sleep
		}
		return nil
	}

	if err := r.publishBatchWithRetry(ctx, receipts); err != nil {
		// Cursor stays put so the next cycle re-reads the same batch
		return err
	}

	r.position = receipts[len(receipts)-1].Cursor
	r.maybeSaveCursor(ctx)

	// A full batch means there is backlog, read again immediately
	if len(receipts) < r.config.BatchSize {
		if !r.sleep(ctx, r.config.PollInterval) {
			return ctx.Err() // Context canceled during sleep
		}
	}

	return nil
}

// publishBatchWithRetry attempts to publish a batch with exponential backoff retry
func (r *relay) publishBatchWithRetry(ctx context.Context, receipts []schema.Receipt) error {
	// Configure exponential backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 10 * time.Minute // Total retry time limit
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5 // Add jitter to prevent thundering herd

	// Wrap with context to respect cancellation
	backoffWithContext := backoff.WithContext(b, ctx)

	operation := func() error {
		return r.publishBatch(ctx, receipts)
	}

	// Execute with retry and detailed logging
	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Receipt batch publish failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError)
	if err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount, err)
	}

	if attemptCount > 0 {
		logger.InfoCtx(ctx, "Receipt batch publish succeeded after retries",
			zap.Int("total_attempts", attemptCount+1),
		)
	}

	return nil
}

// publishBatch publishes every receipt in the batch on a worker pool.
// A retried batch republishes receipts that already went out; that is
// harmless because consumers deduplicate on the receipt id.
func (r *relay) publishBatch(ctx context.Context, receipts []schema.Receipt) error {
	pool := pond.NewPool(
		r.config.WorkerPoolSize,
		pond.WithQueueSize(len(receipts)),
		pond.WithContext(ctx),
	)

	var failedCount atomic.Int32

	for _, row := range receipts {
		pool.Submit(func() {
			receipt := &domain.Receipt{
				ID:        row.ReceiptID,
				Kind:      row.Kind,
				Payload:   json.RawMessage(row.Payload),
				CreatedAt: row.CreatedAt,
			}
			if err := r.publisher.PublishReceipt(ctx, receipt); err != nil {
				failedCount.Add(1)
				logger.ErrorCtx(ctx, err,
					zap.String("receipt_id", row.ReceiptID),
					zap.String("kind", string(row.Kind)),
				)
			}
		})
	}

	// Wait for all publishes to finish
	pool.StopAndWait()

	if failed := failedCount.Load(); failed > 0 {
		return fmt.Errorf("failed to publish %d of %d receipts", failed, len(receipts))
	}

	return nil
}

// maybeSaveCursor persists the cursor every N receipts or N seconds.
// A failed save is only logged; the journal replays from the older cursor
// on restart and consumers absorb the duplicates.
func (r *relay) maybeSaveCursor(ctx context.Context) {
	shouldSave := r.position-r.lastSavedCursor >= r.config.CursorSaveFreq ||
		r.clock.Since(r.lastSaveTime) >= r.config.CursorSaveDelay

	if !shouldSave {
		return
	}

	if err := r.cursor.SetReceiptCursor(ctx, r.position); err != nil {
		logger.WarnCtx(ctx, "Failed to save receipt cursor",
			zap.Error(err),
			zap.Int64("cursor", r.position),
		)
		return
	}

	r.lastSavedCursor = r.position
	r.lastSaveTime = r.clock.Now()
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted by context
func (r *relay) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-r.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-r.stopChan:
		return false // Interrupted by stop signal
	}
}
