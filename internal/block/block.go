package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
)

// maxCachedTimestamps bounds the timestamp cache; the set is reset when full
const maxCachedTimestamps = 4096

// BlockProvider gives cached access to the chain head and to block timestamps,
// the two lookups behind block-for-timestamp resolution.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetLatestBlock returns the head block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp of a block, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// BlockFetcher reads block data straight from the chain
type BlockFetcher interface {
	// FetchLatestBlock fetches the head block number
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp of a block
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long the head block number is served from cache
	TTL time.Duration

	// StaleWindow is how long a cached value may still be served when a fetch fails
	StaleWindow time.Duration

	// BlockTimestampTTL is how long to cache block timestamps, 0 caches forever
	BlockTimestampTTL time.Duration
}

// entry is a cached value with the time it was stored
type entry[T any] struct {
	value    T
	storedAt time.Time
}

// fresh reports whether the entry is younger than ttl; a zero ttl never expires
func (e *entry[T]) fresh(now time.Time, ttl time.Duration) bool {
	return e != nil && (ttl == 0 || now.Sub(e.storedAt) < ttl)
}

// usable reports whether the entry may be served after a failed fetch
func (e *entry[T]) usable(now time.Time, staleWindow time.Duration) bool {
	return e != nil && now.Sub(e.storedAt) < staleWindow
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu         sync.RWMutex
	head       *entry[uint64]
	timestamps map[uint64]*entry[time.Time]
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: make(map[uint64]*entry[time.Time]),
	}
}

func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()
	if p.config.TTL > 0 && cached.fresh(now, p.config.TTL) {
		return cached.value, nil
	}

	number, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached.usable(now, p.config.StaleWindow) {
			logger.WarnCtx(ctx, "Using stale head block", zap.Uint64("block_number", cached.value), zap.Error(err))
			return cached.value, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &entry[uint64]{value: number, storedAt: now}
	p.mu.Unlock()

	return number, nil
}

func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	p.mu.RLock()
	cached := p.timestamps[blockNumber]
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached.fresh(now, p.config.BlockTimestampTTL) {
		return cached.value, nil
	}

	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		if cached.usable(now, p.config.StaleWindow) {
			return cached.value, nil
		}
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d and no valid cache available: %w", blockNumber, err)
	}

	p.mu.Lock()
	if len(p.timestamps) >= maxCachedTimestamps {
		p.timestamps = make(map[uint64]*entry[time.Time])
	}
	p.timestamps[blockNumber] = &entry[time.Time]{value: timestamp, storedAt: now}
	p.mu.Unlock()

	return timestamp, nil
}
