package moralis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/source"
)

const (
	// DEFAULT_API_URL is the Moralis Web3 Data API base URL
	DEFAULT_API_URL = "https://deep-index.moralis.io/api/v2.2"
)

// Config holds the configuration for the Moralis event source
type Config struct {
	APIURL string
	APIKey string
	// Chain is the Moralis chain name or hex chain id, e.g. "eth" or "0x1"
	Chain string
}

// ContractEventsResponse is the response of the contract events endpoint
type ContractEventsResponse struct {
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Cursor   *string         `json:"cursor"`
	Result   []ContractEvent `json:"result"`
}

// ContractEvent is a single decoded event
type ContractEvent struct {
	TransactionHash string                     `json:"transaction_hash"`
	Address         string                     `json:"address"`
	BlockNumber     json.Number                `json:"block_number"`
	BlockTimestamp  string                     `json:"block_timestamp"`
	LogIndex        json.Number                `json:"log_index"`
	Data            map[string]json.RawMessage `json:"data"`
}

// DateToBlockResponse is the response of the dateToBlock endpoint
type DateToBlockResponse struct {
	Block     uint64 `json:"block"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

type eventSource struct {
	httpClient adapter.HTTPClient
	config     Config
}

// NewEventSource creates an event source backed by the Moralis Web3 Data API
func NewEventSource(httpClient adapter.HTTPClient, config Config) source.EventSource {
	if config.APIURL == "" {
		config.APIURL = DEFAULT_API_URL
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")
	return &eventSource{
		httpClient: httpClient,
		config:     config,
	}
}

func (s *eventSource) headers() map[string]string {
	return map[string]string{
		"X-API-Key": s.config.APIKey,
	}
}

// NextPage fetches one page of contract events
func (s *eventSource) NextPage(ctx context.Context, filter source.Filter, state source.PageState) (*source.Page, error) {
	if filter.EventABIJSON == "" {
		return nil, errors.New("event ABI is required")
	}

	query := url.Values{}
	query.Set("chain", s.config.Chain)
	query.Set("topic", filter.EventTopic)
	query.Set("from_block", strconv.FormatUint(state.FromBlock, 10))
	query.Set("to_block", strconv.FormatUint(state.ToBlock, 10))
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if state.Cursor != "" {
		query.Set("cursor", state.Cursor)
	}

	endpoint := fmt.Sprintf("%s/%s/events?%s", s.config.APIURL, url.PathEscape(filter.ContractAddress), query.Encode())

	var resp ContractEventsResponse
	if err := s.httpClient.PostJSON(ctx, endpoint, s.headers(), []byte(filter.EventABIJSON), &resp); err != nil {
		return nil, fmt.Errorf("failed to call Moralis contract events API: %w", err)
	}

	page := &source.Page{Events: make([]domain.TransferEvent, 0, len(resp.Result))}
	for _, item := range resp.Result {
		event, err := item.toTransferEvent()
		if err != nil {
			return nil, fmt.Errorf("failed to decode event in tx %s: %w", item.TransactionHash, err)
		}
		page.Events = append(page.Events, event)
	}

	logger.DebugCtx(ctx, "Fetched Moralis contract events",
		zap.Int("page", state.Page),
		zap.Int("count", len(page.Events)),
		zap.Bool("has_cursor", resp.Cursor != nil && *resp.Cursor != ""))

	if resp.Cursor != nil && *resp.Cursor != "" {
		page.Next = &source.PageState{
			FromBlock: state.FromBlock,
			ToBlock:   state.ToBlock,
			Cursor:    *resp.Cursor,
			Page:      state.Page + 1,
		}
	}

	return page, nil
}

// BlockForTimestamp resolves the closest block to t using the dateToBlock endpoint
func (s *eventSource) BlockForTimestamp(ctx context.Context, t time.Time) (uint64, error) {
	query := url.Values{}
	query.Set("chain", s.config.Chain)
	query.Set("date", t.UTC().Format(time.RFC3339))

	endpoint := fmt.Sprintf("%s/dateToBlock?%s", s.config.APIURL, query.Encode())

	var resp DateToBlockResponse
	if err := s.httpClient.GetJSON(ctx, endpoint, s.headers(), &resp); err != nil {
		return 0, fmt.Errorf("failed to call Moralis dateToBlock API: %w", err)
	}

	return resp.Block, nil
}

func (e ContractEvent) toTransferEvent() (domain.TransferEvent, error) {
	blockNumber, err := strconv.ParseUint(e.BlockNumber.String(), 10, 64)
	if err != nil {
		return domain.TransferEvent{}, fmt.Errorf("invalid block number %q: %w", e.BlockNumber, err)
	}

	var logIndex uint64
	if e.LogIndex != "" {
		logIndex, err = strconv.ParseUint(e.LogIndex.String(), 10, 32)
		if err != nil {
			return domain.TransferEvent{}, fmt.Errorf("invalid log index %q: %w", e.LogIndex, err)
		}
	}

	from, err := e.param("from")
	if err != nil {
		return domain.TransferEvent{}, err
	}
	to, err := e.param("to")
	if err != nil {
		return domain.TransferEvent{}, err
	}
	tokenID, err := e.param("tokenId")
	if err != nil {
		return domain.TransferEvent{}, err
	}

	return domain.TransferEvent{
		BlockNumber: blockNumber,
		LogIndex:    uint(logIndex),
		TxHash:      e.TransactionHash,
		FromAddress: from,
		ToAddress:   to,
		TokenID:     tokenID,
	}, nil
}

// param returns the decoded parameter name (or _name); numbers keep their exact text
func (e ContractEvent) param(name string) (string, error) {
	raw, ok := e.Data[name]
	if !ok {
		raw, ok = e.Data["_"+name]
	}
	if !ok {
		return "", fmt.Errorf("event parameter %s not found", name)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unsupported value for event parameter %s: %s", name, string(raw))
	}
	return n.String(), nil
}
