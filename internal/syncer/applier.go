package syncer

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/messaging"
	"github.com/feral-file/ff-ownership-syncer/internal/store"
)

// ApplyResult summarizes a batch folded into the ownership index
type ApplyResult struct {
	// Applied is the number of events fully applied
	Applied int
	// MaxBlock is the highest block number among applied events
	MaxBlock uint64
	// Warnings counts transfers whose sender had no owner record
	Warnings int
}

// Applier folds transfer events into the owner→tokens and token→owner tables
type Applier struct {
	store     store.OwnershipStore
	publisher messaging.Publisher
	chain     domain.Chain
	contract  string
}

// NewApplier creates a new ledger applier
func NewApplier(st store.OwnershipStore, publisher messaging.Publisher, chain domain.Chain, contract string) *Applier {
	return &Applier{
		store:     st,
		publisher: publisher,
		chain:     chain,
		contract:  contract,
	}
}

// Apply applies events in ascending block order; events of the same block keep their source order.
// On failure the returned result describes the events applied before the failing one.
func (a *Applier) Apply(ctx context.Context, events []domain.TransferEvent) (*ApplyResult, error) {
	sorted := slices.Clone(events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BlockNumber < sorted[j].BlockNumber
	})

	result := &ApplyResult{}
	for _, event := range sorted {
		warned, err := a.applyOne(ctx, event)
		if err != nil {
			return result, err
		}
		if warned {
			result.Warnings++
		}

		result.Applied++
		if event.BlockNumber > result.MaxBlock {
			result.MaxBlock = event.BlockNumber
		}
	}

	return result, nil
}

// applyOne runs the three store operations of a single transfer; reports whether a consistency warning was logged
func (a *Applier) applyOne(ctx context.Context, event domain.TransferEvent) (bool, error) {
	from, err := domain.CanonicalAddress(event.FromAddress)
	if err != nil {
		return false, fmt.Errorf("invalid sender in transfer %s: %w", event, err)
	}
	to, err := domain.CanonicalAddress(event.ToAddress)
	if err != nil {
		return false, fmt.Errorf("invalid recipient in transfer %s: %w", event, err)
	}

	logger.DebugCtx(ctx, "Applying transfer",
		zap.Uint64("block_number", event.BlockNumber),
		zap.String("token_id", event.TokenID),
		zap.String("from", from),
		zap.String("to", to))

	warned := false
	found, err := a.store.RemoveOwnerToken(ctx, from, event.TokenID)
	if err != nil {
		return false, &domain.StoreOperationError{Op: "remove_owner_token", Key: from, Err: err}
	}
	if !found {
		warned = true
		logger.WarnCtx(ctx, "Data consistency: transfer from an address without owner record",
			zap.Uint64("block_number", event.BlockNumber),
			zap.String("tx_hash", event.TxHash),
			zap.String("token_id", event.TokenID),
			zap.String("from", from),
			zap.String("to", to))
	}

	if err := a.store.AddOwnerToken(ctx, to, event.TokenID); err != nil {
		return warned, &domain.StoreOperationError{Op: "add_owner_token", Key: to, Err: err}
	}

	if err := a.store.SetTokenOwner(ctx, event.TokenID, to, event.BlockNumber); err != nil {
		return warned, &domain.StoreOperationError{Op: "set_token_owner", Key: event.TokenID, Err: err}
	}

	change := &domain.OwnershipChanged{
		Chain:           a.chain,
		ContractAddress: a.contract,
		TokenID:         event.TokenID,
		FromAddress:     from,
		ToAddress:       to,
		BlockNumber:     event.BlockNumber,
	}
	if err := a.publisher.PublishOwnershipChanged(ctx, change); err != nil {
		logger.WarnCtx(ctx, "Failed to publish ownership change", zap.Error(err), zap.String("token_id", event.TokenID))
	}

	return warned, nil
}
