package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/lease"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/messaging"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
	"github.com/feral-file/ff-ownership-syncer/internal/store"
	"github.com/feral-file/ff-ownership-syncer/internal/store/schema"
)

// Config holds the configuration of a sync run
type Config struct {
	// Filter selects and decodes the tracked transfer events
	Filter source.Filter
	// PageBackoff is the fixed delay before each follow-up page
	PageBackoff time.Duration
	// LeaseKey and LeaseTTL describe the run lease
	LeaseKey string
	LeaseTTL time.Duration
}

// RunResult describes the outcome of a sync run
type RunResult struct {
	RunID  string
	Status domain.RunStatus
	// Phase is the last phase entered; for failed runs the phase that failed
	Phase     domain.RunPhase
	FromBlock uint64
	ToBlock   uint64
	// RangeResolved is false when the run ended before the block range was known
	RangeResolved bool
	Fetched       int
	Applied       int
	Pages         int
	Warnings      int
	// Committed reports whether Watermark was written by this run
	Committed bool
	Watermark uint64
	StartedAt time.Time
	Duration  time.Duration
}

// Syncer runs one incremental pass of the ownership index
//
//go:generate mockgen -source=syncer.go -destination=../mocks/syncer.go -package=mocks -mock_names=Syncer=MockSyncer
type Syncer interface {
	// Run resolves the block range, fetches its events, applies them and commits the watermark.
	// A run that cannot take the lease ends as skipped without an error.
	Run(ctx context.Context) (*RunResult, error)
}

type syncer struct {
	config  Config
	runs    store.RunStore
	locker  lease.Locker
	clock   adapter.Clock
	tracker *WatermarkTracker
	fetcher *Fetcher
	applier *Applier
}

// NewSyncer creates a new syncer
func NewSyncer(
	config Config,
	st store.Store,
	src source.EventSource,
	locker lease.Locker,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Syncer {
	if config.LeaseKey == "" {
		config.LeaseKey = domain.DEFAULT_LEASE_KEY
	}
	return &syncer{
		config:  config,
		runs:    st,
		locker:  locker,
		clock:   clock,
		tracker: NewWatermarkTracker(st, src, clock),
		fetcher: NewFetcher(src, clock, config.PageBackoff),
		applier: NewApplier(st, publisher, config.Filter.Chain, config.Filter.ContractAddress),
	}
}

// Run executes a single sync run
func (s *syncer) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.NewString(),
		Phase:     domain.PhaseIdle,
		StartedAt: s.clock.Now(),
	}
	ctx = logger.WithRunInfo(ctx, logger.RunInfo{
		RunID:    result.RunID,
		Chain:    string(s.config.Filter.Chain),
		Contract: s.config.Filter.ContractAddress,
	})

	logger.InfoCtx(ctx, "Starting sync run")

	held, err := s.locker.Acquire(ctx, s.config.LeaseKey, s.config.LeaseTTL)
	if err != nil {
		if errors.Is(err, domain.ErrLeaseNotAcquired) {
			logger.InfoCtx(ctx, "Another run holds the lease, skipping", zap.String("lease_key", s.config.LeaseKey))
			s.finish(ctx, result, domain.RunStatusSkipped, err)
			return result, nil
		}
		err = fmt.Errorf("failed to acquire run lease: %w", err)
		s.finish(ctx, result, domain.RunStatusFailed, err)
		return result, err
	}
	defer func() {
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			logger.WarnCtx(ctx, "Failed to release run lease", zap.Error(err))
		}
	}()

	if err := s.run(ctx, result); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("phase", string(result.Phase)))
		s.finish(ctx, result, domain.RunStatusFailed, err)
		return result, err
	}

	result.Phase = domain.PhaseIdle
	s.finish(ctx, result, domain.RunStatusSucceeded, nil)
	return result, nil
}

// run walks Idle → ResolvingRange → Fetching → Applying → Committing.
// A failure leaves result.Phase on the failed phase; nothing is committed.
func (s *syncer) run(ctx context.Context, result *RunResult) error {
	result.Phase = domain.PhaseResolvingRange
	watermark, err := s.tracker.Current(ctx)
	if err != nil {
		return err
	}
	target, err := s.tracker.ResolveTarget(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve target block: %w", err)
	}
	result.FromBlock = watermark + 1
	result.ToBlock = target
	result.RangeResolved = true

	logger.InfoCtx(ctx, "Resolved block range",
		zap.Uint64("watermark", watermark),
		zap.Uint64("from_block", result.FromBlock),
		zap.Uint64("to_block", result.ToBlock))

	result.Phase = domain.PhaseFetching
	fetched, err := s.fetcher.FetchRange(ctx, result.FromBlock, result.ToBlock, s.config.Filter)
	if err != nil {
		return err
	}
	result.Fetched = len(fetched.Events)
	result.Pages = fetched.Pages

	if len(fetched.Events) == 0 {
		logger.InfoCtx(ctx, "No transfer events in range, watermark unchanged")
		return nil
	}

	result.Phase = domain.PhaseApplying
	applied, err := s.applier.Apply(ctx, fetched.Events)
	if applied != nil {
		result.Applied = applied.Applied
		result.Warnings = applied.Warnings
	}
	if err != nil {
		return err
	}

	result.Phase = domain.PhaseCommitting
	if err := s.tracker.Commit(ctx, applied.MaxBlock); err != nil {
		return err
	}
	result.Committed = true
	result.Watermark = applied.MaxBlock

	logger.InfoCtx(ctx, "Committed watermark", zap.Uint64("watermark", applied.MaxBlock))

	return nil
}

// finish logs the outcome and writes the run record; a failed write never changes the outcome
func (s *syncer) finish(ctx context.Context, result *RunResult, status domain.RunStatus, runErr error) {
	result.Status = status
	finishedAt := s.clock.Now()
	result.Duration = finishedAt.Sub(result.StartedAt)

	logger.InfoCtx(ctx, "Sync run finished",
		zap.String("status", string(status)),
		zap.Duration("duration", result.Duration),
		zap.Int("fetched", result.Fetched),
		zap.Int("applied", result.Applied),
		zap.Int("warnings", result.Warnings),
		zap.Bool("committed", result.Committed))

	if s.runs == nil {
		return
	}

	record := &schema.SyncRun{
		ID:              result.RunID,
		Chain:           s.config.Filter.Chain,
		ContractAddress: s.config.Filter.ContractAddress,
		Status:          status,
		Phase:           result.Phase,
		FetchedEvents:   result.Fetched,
		AppliedEvents:   result.Applied,
		Details: datatypes.JSONMap{
			"pages":    result.Pages,
			"warnings": result.Warnings,
		},
		StartedAt:  result.StartedAt,
		FinishedAt: finishedAt,
	}
	if result.RangeResolved {
		from, to := result.FromBlock, result.ToBlock
		record.FromBlock = &from
		record.ToBlock = &to
	}
	if result.Committed {
		watermark := result.Watermark
		record.Watermark = &watermark
	}
	if runErr != nil {
		msg := runErr.Error()
		record.Error = &msg
	}

	if err := s.runs.CreateSyncRun(context.WithoutCancel(ctx), record); err != nil {
		logger.WarnCtx(ctx, "Failed to record sync run", zap.Error(err))
	}
}
