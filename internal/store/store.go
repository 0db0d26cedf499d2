package store

import (
	"context"

	"github.com/feral-file/ff-ownership-syncer/internal/store/schema"
)

// WatermarkStore persists the last processed block
type WatermarkStore interface {
	// GetWatermark returns the last processed block, or domain.ErrWatermarkNotInitialized if none was ever written
	GetWatermark(ctx context.Context) (uint64, error)
	// SetWatermark overwrites the last processed block
	SetWatermark(ctx context.Context, blockNumber uint64) error
	// InitWatermark writes the bootstrap watermark only if no record exists; reports whether it was written
	InitWatermark(ctx context.Context, blockNumber uint64) (bool, error)
}

// OwnershipStore holds the owner→tokens and token→owner tables
type OwnershipStore interface {
	// RemoveOwnerToken removes tokenID from the owner's set; found is false when the owner has no record
	RemoveOwnerToken(ctx context.Context, address string, tokenID string) (found bool, err error)
	// AddOwnerToken adds tokenID to the owner's set, creating the record if absent; adding twice is a no-op
	AddOwnerToken(ctx context.Context, address string, tokenID string) error
	// SetTokenOwner overwrites the owner of tokenID
	SetTokenOwner(ctx context.Context, tokenID string, owner string, blockNumber uint64) error
	// GetOwnerTokens returns the tokens owned by address, nil if the owner has no record
	GetOwnerTokens(ctx context.Context, address string) ([]string, error)
	// GetTokenOwner returns the owner record of tokenID, nil if the token was never transferred
	GetTokenOwner(ctx context.Context, tokenID string) (*schema.TokenOwner, error)
}

// RunStore records sync runs
type RunStore interface {
	// CreateSyncRun inserts a run record
	CreateSyncRun(ctx context.Context, run *schema.SyncRun) error
	// GetRecentSyncRuns returns the latest run records, newest first
	GetRecentSyncRuns(ctx context.Context, limit int) ([]schema.SyncRun, error)
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	WatermarkStore
	OwnershipStore
	RunStore
}
