package block

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/logger"
)

// Resolver maps wall-clock time to block height
//
//go:generate mockgen -source=resolver.go -destination=../mocks/block_resolver.go -package=mocks -mock_names=Resolver=MockBlockResolver
type Resolver interface {
	// BlockForTimestamp returns the highest block whose timestamp is not after t.
	// Returns 0 when t precedes the earliest searchable block.
	BlockForTimestamp(ctx context.Context, t time.Time) (uint64, error)
}

type resolver struct {
	provider BlockProvider
	minBlock uint64
}

// NewResolver creates a resolver that binary searches block timestamps in [minBlock, latest]
func NewResolver(provider BlockProvider, minBlock uint64) Resolver {
	return &resolver{provider: provider, minBlock: minBlock}
}

func (r *resolver) BlockForTimestamp(ctx context.Context, t time.Time) (uint64, error) {
	latest, err := r.provider.GetLatestBlock(ctx)
	if err != nil {
		return 0, err
	}

	latestTime, err := r.provider.GetBlockTimestamp(ctx, latest)
	if err != nil {
		return 0, err
	}
	if !latestTime.After(t) {
		return latest, nil
	}

	if latest <= r.minBlock {
		return r.minBlock, nil
	}

	lowTime, err := r.provider.GetBlockTimestamp(ctx, r.minBlock)
	if err != nil {
		return 0, err
	}
	if lowTime.After(t) {
		return 0, nil
	}

	// Invariant: ts(lo) <= t < ts(hi)
	lo, hi := r.minBlock, latest
	steps := 0
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		midTime, err := r.provider.GetBlockTimestamp(ctx, mid)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve block for %s: %w", t.UTC().Format(time.RFC3339), err)
		}
		if midTime.After(t) {
			hi = mid
		} else {
			lo = mid
		}
		steps++
	}

	logger.DebugCtx(ctx, "Resolved block for timestamp",
		zap.Time("timestamp", t),
		zap.Uint64("block_number", lo),
		zap.Int("steps", steps))

	return lo, nil
}
