package syncer

import (
	"context"
	"errors"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
	"github.com/feral-file/ff-ownership-syncer/internal/store"
)

// WatermarkTracker reads and commits the last processed block and resolves the target block of a run
type WatermarkTracker struct {
	store    store.WatermarkStore
	resolver source.BlockResolver
	clock    adapter.Clock
}

// NewWatermarkTracker creates a new watermark tracker
func NewWatermarkTracker(st store.WatermarkStore, resolver source.BlockResolver, clock adapter.Clock) *WatermarkTracker {
	return &WatermarkTracker{
		store:    st,
		resolver: resolver,
		clock:    clock,
	}
}

// Current returns the stored watermark.
// A missing record is returned as domain.ErrWatermarkNotInitialized; the bootstrap value is written out-of-band.
func (w *WatermarkTracker) Current(ctx context.Context) (uint64, error) {
	block, err := w.store.GetWatermark(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrWatermarkNotInitialized) {
			return 0, err
		}
		return 0, &domain.StoreOperationError{Op: "get_watermark", Key: domain.WATERMARK_KEY, Err: err}
	}
	return block, nil
}

// ResolveTarget returns the block at invocation time, the inclusive upper bound of the run
func (w *WatermarkTracker) ResolveTarget(ctx context.Context) (uint64, error) {
	return w.resolver.BlockForTimestamp(ctx, w.clock.Now())
}

// Commit overwrites the stored watermark
func (w *WatermarkTracker) Commit(ctx context.Context, block uint64) error {
	if err := w.store.SetWatermark(ctx, block); err != nil {
		return &domain.StoreOperationError{Op: "set_watermark", Key: domain.WATERMARK_KEY, Err: err}
	}
	return nil
}
