package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/syncer"
)

const (
	DEFAULT_RUN_INTERVAL = 5 * time.Minute // Time between two sync runs
)

// Scheduler defines the interface for long-running periodic triggers
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	// Start begins the scheduler's main loop
	// This is a blocking call that runs until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop gracefully stops the scheduler
	// An in-progress run is allowed to finish
	Stop(ctx context.Context) error

	// Name returns the scheduler's name for logging and identification
	Name() string
}

// Config holds configuration for the sync scheduler
type Config struct {
	Interval   time.Duration // Time between the end of a run and the start of the next one
	RunOnStart bool          // Run immediately instead of waiting for the first interval
}

// syncScheduler triggers a sync run every interval
type syncScheduler struct {
	config    Config
	syncer    syncer.Syncer
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewSyncScheduler creates a new scheduler for the given syncer
func NewSyncScheduler(config Config, s syncer.Syncer, clock adapter.Clock) Scheduler {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_RUN_INTERVAL
	}
	return &syncScheduler{
		config:    config,
		syncer:    s,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the scheduler's name
func (s *syncScheduler) Name() string {
	return "ownership-sync-scheduler"
}

// Start runs the syncer on every tick until the context is canceled or stop is requested.
// Runs never overlap; a failed run is logged and the next tick proceeds as usual.
func (s *syncScheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting sync scheduler",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)

	if s.config.RunOnStart {
		s.runOnce(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Sync scheduler stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Sync scheduler stop requested")
			return nil
		case <-s.clock.After(s.config.Interval):
			s.runOnce(ctx)
		}
	}
}

// Stop gracefully stops the scheduler with timeout support
func (s *syncScheduler) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil // Not running
	}

	logger.InfoCtx(ctx, "Stopping sync scheduler")

	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Sync scheduler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runOnce triggers a single run; errors are logged only
func (s *syncScheduler) runOnce(ctx context.Context) {
	select {
	case <-s.stopChan:
		return
	default:
	}

	result, err := s.syncer.Run(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("scheduler", s.Name()))
		}
		return
	}

	if result != nil {
		logger.InfoCtx(ctx, "Scheduled sync run completed",
			zap.String("run_id", result.RunID),
			zap.String("status", string(result.Status)),
			zap.Uint64("watermark", result.Watermark),
		)
	}
}
