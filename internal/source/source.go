package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
)

// Filter fixes which events a source returns and how they are decoded
type Filter struct {
	Chain           domain.Chain
	ContractAddress string
	EventTopic      string
	Event           abi.Event
	// EventABIJSON is the event ABI object as JSON, for sources that decode server side
	EventABIJSON string
	// Limit is the maximum number of events per page
	Limit int
}

// PageState is the continuation handed back by a source between pages
type PageState struct {
	FromBlock uint64
	ToBlock   uint64
	// Cursor is opaque to the caller; empty on the first page
	Cursor string
	// Page is the 1-based number of the page about to be fetched
	Page int
}

// Page is one batch of events in source order
type Page struct {
	Events []domain.TransferEvent
	// Next is nil when the range is exhausted
	Next *PageState
}

// PageIterator pulls pages of transfer events for a block range
//
//go:generate mockgen -source=source.go -destination=../mocks/source.go -package=mocks -mock_names=PageIterator=MockPageIterator,BlockResolver=MockBlockResolverSource,EventSource=MockEventSource
type PageIterator interface {
	// NextPage fetches the page described by state
	NextPage(ctx context.Context, filter Filter, state PageState) (*Page, error)
}

// BlockResolver maps a point in time to a block height on the source's chain
type BlockResolver interface {
	BlockForTimestamp(ctx context.Context, t time.Time) (uint64, error)
}

// EventSource is a complete provider of transfer events
type EventSource interface {
	PageIterator
	BlockResolver
}

// FirstPage returns the state for the first page of [fromBlock, toBlock]
func FirstPage(fromBlock, toBlock uint64) PageState {
	return PageState{FromBlock: fromBlock, ToBlock: toBlock, Page: 1}
}

// Position is a point in the log stream, used as the JSON-RPC source cursor
type Position struct {
	Block    uint64
	LogIndex uint
}

// String encodes the position as "block/logIndex"
func (p Position) String() string {
	return fmt.Sprintf("%d/%d", p.Block, p.LogIndex)
}

// After reports whether the log at (block, logIndex) comes strictly after p
func (p Position) After(block uint64, logIndex uint) bool {
	if block != p.Block {
		return block > p.Block
	}
	return logIndex > p.LogIndex
}

// ParsePosition decodes a cursor produced by Position.String
func ParsePosition(cursor string) (Position, error) {
	blockPart, indexPart, ok := strings.Cut(cursor, "/")
	if !ok {
		return Position{}, fmt.Errorf("invalid position cursor %q", cursor)
	}

	block, err := strconv.ParseUint(blockPart, 10, 64)
	if err != nil {
		return Position{}, fmt.Errorf("invalid block in position cursor %q: %w", cursor, err)
	}

	logIndex, err := strconv.ParseUint(indexPart, 10, 32)
	if err != nil {
		return Position{}, fmt.Errorf("invalid log index in position cursor %q: %w", cursor, err)
	}

	return Position{Block: block, LogIndex: uint(logIndex)}, nil
}
