package syncer_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
	"github.com/feral-file/ff-ownership-syncer/internal/store/schema"
)

const (
	addrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	addrC = "0xcccccccccccccccccccccccccccccccccccccccc"

	testContract = "0x06012c8cf97BEaD5deAe237070F9587f8E7A266d"
)

var errStoreDown = errors.New("store unavailable")

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// canon returns the EIP-55 form the index stores
func canon(address string) string {
	return common.HexToAddress(address).Hex()
}

func testFilter() source.Filter {
	return source.Filter{
		Chain:           domain.ChainEthereumMainnet,
		ContractAddress: testContract,
		EventTopic:      "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
		Limit:           100,
	}
}

func transfer(block uint64, from, to, tokenID string) domain.TransferEvent {
	return domain.TransferEvent{
		BlockNumber: block,
		FromAddress: from,
		ToAddress:   to,
		TokenID:     tokenID,
	}
}

// memoryStore is an in-memory store.Store
type memoryStore struct {
	mu          sync.Mutex
	watermark   *uint64
	ownerTokens map[string][]string
	tokenOwner  map[string]schema.TokenOwner
	runs        []schema.SyncRun

	// failOn makes the named operation fail
	failOn string
	// setWatermarkCalls counts SetWatermark invocations
	setWatermarkCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		ownerTokens: make(map[string][]string),
		tokenOwner:  make(map[string]schema.TokenOwner),
	}
}

func (s *memoryStore) withWatermark(block uint64) *memoryStore {
	s.watermark = &block
	return s
}

func (s *memoryStore) GetWatermark(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "get_watermark" {
		return 0, errStoreDown
	}
	if s.watermark == nil {
		return 0, domain.ErrWatermarkNotInitialized
	}
	return *s.watermark, nil
}

func (s *memoryStore) SetWatermark(ctx context.Context, blockNumber uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setWatermarkCalls++
	if s.failOn == "set_watermark" {
		return errStoreDown
	}
	s.watermark = &blockNumber
	return nil
}

func (s *memoryStore) InitWatermark(ctx context.Context, blockNumber uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watermark != nil {
		return false, nil
	}
	s.watermark = &blockNumber
	return true, nil
}

func (s *memoryStore) RemoveOwnerToken(ctx context.Context, address string, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "remove_owner_token" {
		return false, errStoreDown
	}
	tokens, ok := s.ownerTokens[address]
	if !ok {
		return false, nil
	}
	kept := []string{}
	for _, t := range tokens {
		if t != tokenID {
			kept = append(kept, t)
		}
	}
	s.ownerTokens[address] = kept
	return true, nil
}

func (s *memoryStore) AddOwnerToken(ctx context.Context, address string, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "add_owner_token" {
		return errStoreDown
	}
	for _, t := range s.ownerTokens[address] {
		if t == tokenID {
			return nil
		}
	}
	s.ownerTokens[address] = append(s.ownerTokens[address], tokenID)
	return nil
}

func (s *memoryStore) SetTokenOwner(ctx context.Context, tokenID string, owner string, blockNumber uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "set_token_owner" {
		return errStoreDown
	}
	s.tokenOwner[tokenID] = schema.TokenOwner{TokenID: tokenID, Owner: owner, BlockNumber: blockNumber}
	return nil
}

func (s *memoryStore) GetOwnerTokens(ctx context.Context, address string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownerTokens[address], nil
}

func (s *memoryStore) GetTokenOwner(ctx context.Context, tokenID string) (*schema.TokenOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.tokenOwner[tokenID]
	if !ok {
		return nil, nil
	}
	return &owner, nil
}

func (s *memoryStore) CreateSyncRun(ctx context.Context, run *schema.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == "create_sync_run" {
		return errStoreDown
	}
	s.runs = append(s.runs, *run)
	return nil
}

func (s *memoryStore) GetRecentSyncRuns(ctx context.Context, limit int) ([]schema.SyncRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []schema.SyncRun
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// fakeSource serves fixed pages and a fixed target block
type fakeSource struct {
	target   uint64
	pages    [][]domain.TransferEvent
	failPage int

	states []source.PageState
}

func (f *fakeSource) BlockForTimestamp(ctx context.Context, t time.Time) (uint64, error) {
	return f.target, nil
}

func (f *fakeSource) NextPage(ctx context.Context, filter source.Filter, state source.PageState) (*source.Page, error) {
	f.states = append(f.states, state)
	if state.Page == f.failPage {
		return nil, errors.New("upstream returned 502")
	}

	page := &source.Page{}
	if state.Page <= len(f.pages) {
		page.Events = f.pages[state.Page-1]
	}
	if state.Page < len(f.pages) {
		next := state
		next.Page++
		next.Cursor = "cursor"
		page.Next = &next
	}
	return page, nil
}
