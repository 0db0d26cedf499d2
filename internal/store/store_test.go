package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/store/schema"
)

const (
	ownerA = "0x1111111111111111111111111111111111111111"
	ownerB = "0x2222222222222222222222222222222222222222"
)

// =============================================================================
// Test: Watermark
// =============================================================================

func testWatermark(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing watermark is reported as not initialized", func(t *testing.T) {
		_, err := store.GetWatermark(ctx)
		assert.ErrorIs(t, err, domain.ErrWatermarkNotInitialized)
	})

	t.Run("init writes the bootstrap watermark once", func(t *testing.T) {
		created, err := store.InitWatermark(ctx, 100)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = store.InitWatermark(ctx, 500)
		require.NoError(t, err)
		assert.False(t, created)

		watermark, err := store.GetWatermark(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), watermark)
	})

	t.Run("set overwrites the watermark", func(t *testing.T) {
		require.NoError(t, store.SetWatermark(ctx, 103))

		watermark, err := store.GetWatermark(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(103), watermark)
	})
}

// =============================================================================
// Test: Owner tokens
// =============================================================================

func testAddOwnerToken(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates the record when absent", func(t *testing.T) {
		require.NoError(t, store.AddOwnerToken(ctx, ownerA, "5"))

		tokens, err := store.GetOwnerTokens(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, []string{"5"}, tokens)
	})

	t.Run("adding the same token twice keeps a set", func(t *testing.T) {
		require.NoError(t, store.AddOwnerToken(ctx, ownerA, "5"))

		tokens, err := store.GetOwnerTokens(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, []string{"5"}, tokens)
	})

	t.Run("appends new tokens in order", func(t *testing.T) {
		require.NoError(t, store.AddOwnerToken(ctx, ownerA, "7"))
		require.NoError(t, store.AddOwnerToken(ctx, ownerA, "6"))

		tokens, err := store.GetOwnerTokens(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, []string{"5", "7", "6"}, tokens)
	})

	t.Run("unknown owner has no tokens", func(t *testing.T) {
		tokens, err := store.GetOwnerTokens(ctx, ownerB)
		require.NoError(t, err)
		assert.Nil(t, tokens)
	})
}

func testRemoveOwnerToken(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing owner record is reported", func(t *testing.T) {
		found, err := store.RemoveOwnerToken(ctx, ownerB, "1")
		require.NoError(t, err)
		assert.False(t, found)

		tokens, err := store.GetOwnerTokens(ctx, ownerB)
		require.NoError(t, err)
		assert.Nil(t, tokens)
	})

	t.Run("removes the token and keeps the record", func(t *testing.T) {
		require.NoError(t, store.AddOwnerToken(ctx, ownerA, "1"))
		require.NoError(t, store.AddOwnerToken(ctx, ownerA, "2"))

		found, err := store.RemoveOwnerToken(ctx, ownerA, "1")
		require.NoError(t, err)
		assert.True(t, found)

		tokens, err := store.GetOwnerTokens(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, tokens)

		found, err = store.RemoveOwnerToken(ctx, ownerA, "2")
		require.NoError(t, err)
		assert.True(t, found)

		tokens, err = store.GetOwnerTokens(ctx, ownerA)
		require.NoError(t, err)
		assert.NotNil(t, tokens)
		assert.Empty(t, tokens)
	})

	t.Run("removing a token the owner does not hold is a no-op", func(t *testing.T) {
		require.NoError(t, store.AddOwnerToken(ctx, ownerA, "3"))

		found, err := store.RemoveOwnerToken(ctx, ownerA, "99")
		require.NoError(t, err)
		assert.True(t, found)

		tokens, err := store.GetOwnerTokens(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, tokens)
	})
}

// =============================================================================
// Test: Token owner
// =============================================================================

func testTokenOwner(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unknown token has no owner", func(t *testing.T) {
		owner, err := store.GetTokenOwner(ctx, "404")
		require.NoError(t, err)
		assert.Nil(t, owner)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, store.SetTokenOwner(ctx, "1", ownerA, 101))
		require.NoError(t, store.SetTokenOwner(ctx, "1", ownerB, 103))

		owner, err := store.GetTokenOwner(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, owner)
		assert.Equal(t, ownerB, owner.Owner)
		assert.Equal(t, uint64(103), owner.BlockNumber)
	})
}

// =============================================================================
// Test: Sync runs
// =============================================================================

func testSyncRuns(t *testing.T, store Store) {
	ctx := context.Background()
	startedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	from, to, watermark := uint64(101), uint64(105), uint64(103)
	failure := "failed to fetch events"

	succeeded := &schema.SyncRun{
		ID:              uuid.NewString(),
		Chain:           domain.ChainEthereumMainnet,
		ContractAddress: "0x06012c8cf97BEaD5deAe237070F9587f8E7A266d",
		Status:          domain.RunStatusSucceeded,
		Phase:           domain.PhaseIdle,
		FromBlock:       &from,
		ToBlock:         &to,
		FetchedEvents:   2,
		AppliedEvents:   2,
		Watermark:       &watermark,
		Details:         datatypes.JSONMap{"pages": 2},
		StartedAt:       startedAt,
		FinishedAt:      startedAt.Add(3 * time.Second),
	}
	failed := &schema.SyncRun{
		ID:              uuid.NewString(),
		Chain:           domain.ChainEthereumMainnet,
		ContractAddress: "0x06012c8cf97BEaD5deAe237070F9587f8E7A266d",
		Status:          domain.RunStatusFailed,
		Phase:           domain.PhaseFetching,
		Error:           &failure,
		StartedAt:       startedAt.Add(5 * time.Minute),
		FinishedAt:      startedAt.Add(5*time.Minute + time.Second),
	}

	require.NoError(t, store.CreateSyncRun(ctx, succeeded))
	require.NoError(t, store.CreateSyncRun(ctx, failed))

	runs, err := store.GetRecentSyncRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, failed.ID, runs[0].ID)
	assert.Equal(t, domain.RunStatusFailed, runs[0].Status)
	require.NotNil(t, runs[0].Error)
	assert.Equal(t, failure, *runs[0].Error)
	assert.Nil(t, runs[0].Watermark)

	assert.Equal(t, succeeded.ID, runs[1].ID)
	require.NotNil(t, runs[1].Watermark)
	assert.Equal(t, uint64(103), *runs[1].Watermark)
	assert.EqualValues(t, 2, runs[1].Details["pages"])
}

// RunStoreTests runs every store test against a fresh store from initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Watermark", testWatermark},
		{"AddOwnerToken", testAddOwnerToken},
		{"RemoveOwnerToken", testRemoveOwnerToken},
		{"TokenOwner", testTokenOwner},
		{"SyncRuns", testSyncRuns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}
