package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/block"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
)

const (
	// DEFAULT_BLOCK_STEP is the default eth_getLogs window size
	DEFAULT_BLOCK_STEP = 2000

	// filterLogsTimeout bounds a single eth_getLogs call
	filterLogsTimeout = time.Minute
)

// Config holds the configuration for the JSON-RPC event source
type Config struct {
	// BlockStep is the initial window size for eth_getLogs
	BlockStep uint64
}

type eventSource struct {
	client   adapter.EthClient
	resolver block.Resolver
	config   Config
}

// NewEventSource creates an event source backed by eth_getLogs.
// Each page scans block windows until it holds filter.Limit events or reaches the end of the range.
func NewEventSource(client adapter.EthClient, resolver block.Resolver, config Config) source.EventSource {
	if config.BlockStep == 0 {
		config.BlockStep = DEFAULT_BLOCK_STEP
	}
	return &eventSource{
		client:   client,
		resolver: resolver,
		config:   config,
	}
}

// BlockForTimestamp resolves the last block mined at or before t
func (s *eventSource) BlockForTimestamp(ctx context.Context, t time.Time) (uint64, error) {
	return s.resolver.BlockForTimestamp(ctx, t)
}

// NextPage fetches the page described by state
func (s *eventSource) NextPage(ctx context.Context, filter source.Filter, state source.PageState) (*source.Page, error) {
	if filter.Limit <= 0 {
		return nil, errors.New("page limit must be positive")
	}

	page := &source.Page{}
	if state.FromBlock > state.ToBlock {
		return page, nil
	}

	scanFrom := state.FromBlock
	var after *source.Position
	if state.Cursor != "" {
		pos, err := source.ParsePosition(state.Cursor)
		if err != nil {
			return nil, err
		}
		after = &pos
		scanFrom = pos.Block
	}

	query := ethereum.FilterQuery{
		Addresses: []common.Address{common.HexToAddress(filter.ContractAddress)},
		Topics:    [][]common.Hash{{common.HexToHash(filter.EventTopic)}},
	}

	step := s.config.BlockStep
	for scanFrom <= state.ToBlock {
		windowTo := scanFrom + step - 1
		if windowTo > state.ToBlock || windowTo < scanFrom {
			windowTo = state.ToBlock
		}

		logs, err := s.filterLogs(ctx, query, scanFrom, windowTo)
		if err != nil {
			if !isTooManyResultsError(err) || step == 1 {
				return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", scanFrom, windowTo, err)
			}

			step = step / 2
			logger.WarnCtx(ctx, "Too many results, reducing step size",
				zap.Uint64("oldStepSize", step*2),
				zap.Uint64("newStepSize", step),
				zap.Uint64("fromBlock", scanFrom),
				zap.Uint64("toBlock", windowTo))
			continue
		}

		for i, vLog := range logs {
			if vLog.Removed {
				continue
			}
			if after != nil && !after.After(vLog.BlockNumber, vLog.Index) {
				continue
			}

			event, err := decodeTransfer(filter.Event, vLog)
			if err != nil {
				return nil, fmt.Errorf("failed to decode log %s:%d: %w", vLog.TxHash.Hex(), vLog.Index, err)
			}
			page.Events = append(page.Events, event)

			if len(page.Events) < filter.Limit {
				continue
			}

			// Page is full; continue after this log unless nothing is left in the range
			if i < len(logs)-1 || windowTo < state.ToBlock {
				page.Next = &source.PageState{
					FromBlock: state.FromBlock,
					ToBlock:   state.ToBlock,
					Cursor:    source.Position{Block: vLog.BlockNumber, LogIndex: vLog.Index}.String(),
					Page:      state.Page + 1,
				}
			}
			return page, nil
		}

		if windowTo == state.ToBlock {
			break
		}
		scanFrom = windowTo + 1
	}

	return page, nil
}

// filterLogs runs one eth_getLogs call and returns the logs in chain order
func (s *eventSource) filterLogs(ctx context.Context, query ethereum.FilterQuery, fromBlock, toBlock uint64) ([]types.Log, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, filterLogsTimeout)
	defer cancel()

	query.FromBlock = new(big.Int).SetUint64(fromBlock)
	query.ToBlock = new(big.Int).SetUint64(toBlock)

	logs, err := s.client.FilterLogs(timeoutCtx, query)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	return logs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	// Check for common "too many results" error messages
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}
