package domain

import (
	"fmt"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonMainnet  Chain = "eip155:137"
	ChainPolygonAmoy     Chain = "eip155:80002"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainPolygonMainnet ||
		chain == ChainPolygonAmoy
}

// TransferEvent is a decoded ownership transfer of a single token.
// Sequence is the position assigned by the event source within a fetched batch
// and only serves to keep same-block events in source order.
type TransferEvent struct {
	BlockNumber uint64 `json:"block_number"`
	LogIndex    uint   `json:"log_index"`
	TxHash      string `json:"tx_hash,omitempty"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	TokenID     string `json:"token_id"`
	Sequence    int    `json:"-"`
}

// String returns a short human readable form used in logs
func (e TransferEvent) String() string {
	return fmt.Sprintf("%d:%s:%s->%s", e.BlockNumber, e.TokenID, e.FromAddress, e.ToAddress)
}

// OwnershipChanged is the notification published after a transfer was folded into the index
type OwnershipChanged struct {
	Chain           Chain  `json:"chain"`
	ContractAddress string `json:"contract_address"`
	TokenID         string `json:"token_id"`
	FromAddress     string `json:"from_address"`
	ToAddress       string `json:"to_address"`
	BlockNumber     uint64 `json:"block_number"`
}

// RunStatus represents the outcome of a sync run
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
	RunStatusSkipped   RunStatus = "skipped"
)

// RunPhase is the state a sync run is in
type RunPhase string

const (
	PhaseIdle           RunPhase = "idle"
	PhaseResolvingRange RunPhase = "resolving_range"
	PhaseFetching       RunPhase = "fetching"
	PhaseApplying       RunPhase = "applying"
	PhaseCommitting     RunPhase = "committing"
)
