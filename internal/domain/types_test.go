package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidChain(t *testing.T) {
	tests := []struct {
		name     string
		chain    Chain
		expected bool
	}{
		{
			name:     "valid ethereum mainnet",
			chain:    ChainEthereumMainnet,
			expected: true,
		},
		{
			name:     "valid ethereum sepolia",
			chain:    ChainEthereumSepolia,
			expected: true,
		},
		{
			name:     "valid polygon mainnet",
			chain:    ChainPolygonMainnet,
			expected: true,
		},
		{
			name:     "tezos is not indexed",
			chain:    Chain("tezos:mainnet"),
			expected: false,
		},
		{
			name:     "empty chain",
			chain:    Chain(""),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidChain(tt.chain))
		})
	}
}

func TestTransferEvent_String(t *testing.T) {
	event := TransferEvent{BlockNumber: 101, FromAddress: "A", ToAddress: "B", TokenID: "T1"}
	assert.Equal(t, "101:T1:A->B", event.String())
}
