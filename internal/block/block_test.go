package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-ownership-syncer/internal/block"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBlockProviderMocks contains all the mocks needed for testing the block provider
type testBlockProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockFetcher
	clock    *mocks.MockClock
	provider block.BlockProvider
}

// setupTest creates all the mocks and block provider for testing
func setupTest(t *testing.T) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	provider := block.NewBlockProvider(mockFetcher, block.Config{
		TTL:               10 * time.Second,
		StaleWindow:       2 * time.Minute,
		BlockTimestampTTL: 0, // Cache block timestamps forever by default
	}, mockClock)

	return &testBlockProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		clock:    mockClock,
		provider: provider,
	}
}

// tearDownTest cleans up the test mocks
func tearDownTest(tm *testBlockProviderMocks) {
	tm.ctrl.Finish()
}

// headStep is one GetLatestBlock call: the clock offset, the fetch outcome (nil when no fetch is expected) and the expected result
type headStep struct {
	offset   time.Duration
	fetch    *uint64
	fetchErr error
	want     uint64
	wantErr  string
}

func fetched(n uint64) *uint64 {
	return &n
}

func TestBlockProvider_GetLatestBlock(t *testing.T) {
	networkErr := errors.New("network error")

	tests := []struct {
		name  string
		steps []headStep
	}{
		{
			name:  "first call fetches",
			steps: []headStep{{offset: 0, fetch: fetched(1000), want: 1000}},
		},
		{
			name: "served from cache within TTL",
			steps: []headStep{
				{offset: 0, fetch: fetched(1000), want: 1000},
				{offset: 5 * time.Second, want: 1000},
			},
		},
		{
			name: "refetched after TTL",
			steps: []headStep{
				{offset: 0, fetch: fetched(1000), want: 1000},
				{offset: 15 * time.Second, fetch: fetched(1100), want: 1100},
			},
		},
		{
			name: "stale head served inside stale window",
			steps: []headStep{
				{offset: 0, fetch: fetched(1000), want: 1000},
				{offset: 30 * time.Second, fetch: fetched(0), fetchErr: networkErr, want: 1000},
			},
		},
		{
			name: "error beyond stale window",
			steps: []headStep{
				{offset: 0, fetch: fetched(1000), want: 1000},
				{offset: 5 * time.Minute, fetch: fetched(0), fetchErr: networkErr, wantErr: "failed to fetch latest block and no valid cache available"},
			},
		},
		{
			name:  "error without cache",
			steps: []headStep{{offset: 0, fetch: fetched(0), fetchErr: networkErr, wantErr: "no valid cache available"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			ctx := context.Background()
			base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

			for _, step := range tt.steps {
				tm.clock.EXPECT().Now().Return(base.Add(step.offset))
				if step.fetch != nil {
					tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(*step.fetch, step.fetchErr)
				}

				blockNum, err := tm.provider.GetLatestBlock(ctx)
				if step.wantErr != "" {
					assert.Error(t, err)
					assert.ErrorIs(t, err, step.fetchErr)
					assert.Contains(t, err.Error(), step.wantErr)
					continue
				}
				assert.NoError(t, err)
				assert.Equal(t, step.want, blockNum)
			}
		})
	}
}

func TestBlockProvider_GetLatestBlock_ZeroTTLAlwaysFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockBlockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)
	provider := block.NewBlockProvider(fetcher, block.Config{StaleWindow: time.Minute}, clock)

	ctx := context.Background()
	clock.EXPECT().Now().Return(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Times(2)
	gomock.InOrder(
		fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil),
		fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1001), nil),
	)

	first, err := provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	second, err := provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), first)
	assert.Equal(t, uint64(1001), second)
}

func TestBlockProvider_GetBlockTimestamp_UsesCache_WithZeroTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	blockTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(blockTime, nil)

	ts, err := tm.provider.GetBlockTimestamp(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, blockTime, ts)

	// Much later - still cached since timestamps never change
	tm.clock.EXPECT().Now().Return(now.Add(24 * time.Hour))

	ts, err = tm.provider.GetBlockTimestamp(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, blockTime, ts)
}

func TestBlockProvider_GetBlockTimestamp_ReturnsError_WhenNoCache_AndFetchFails(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(time.Time{}, errors.New("network error"))

	_, err := tm.provider.GetBlockTimestamp(ctx, 1000)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch block timestamp for block 1000 and no valid cache available")
}

func TestBlockProvider_ConcurrentAccess(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	blockTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil).AnyTimes()
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(blockTime, nil).AnyTimes()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	done := make(chan bool, 10)
	for range 10 {
		go func() {
			blockNum, err := tm.provider.GetLatestBlock(ctx)
			assert.NoError(t, err)
			assert.Equal(t, uint64(1000), blockNum)

			ts, err := tm.provider.GetBlockTimestamp(ctx, blockNum)
			assert.NoError(t, err)
			assert.Equal(t, blockTime, ts)
			done <- true
		}()
	}

	for range 10 {
		<-done
	}
}
