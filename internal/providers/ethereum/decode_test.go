package ethereum

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Transfer with non-indexed, underscore-prefixed inputs as deployed by early ERC-721 contracts
const legacyTransferABI = `[{"anonymous":false,"inputs":[{"indexed":false,"name":"_from","type":"address"},{"indexed":false,"name":"_to","type":"address"},{"indexed":false,"name":"_tokenId","type":"uint256"}],"name":"Transfer","type":"event"}]`

func TestDecodeTransfer_NonIndexedInputs(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(legacyTransferABI))
	require.NoError(t, err)
	event := parsed.Events["Transfer"]

	from := common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	to := common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	data, err := event.Inputs.Pack(from, to, big.NewInt(1234))
	require.NoError(t, err)

	decoded, err := decodeTransfer(event, types.Log{
		Topics:      []common.Hash{event.ID},
		Data:        data,
		BlockNumber: 4_605_167,
		Index:       7,
	})
	require.NoError(t, err)
	assert.Equal(t, from.Hex(), decoded.FromAddress)
	assert.Equal(t, to.Hex(), decoded.ToAddress)
	assert.Equal(t, "1234", decoded.TokenID)
	assert.Equal(t, uint64(4_605_167), decoded.BlockNumber)
	assert.Equal(t, uint(7), decoded.LogIndex)
}

func TestDecodeTransfer_TopicMismatch(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(legacyTransferABI))
	require.NoError(t, err)

	_, err = decodeTransfer(parsed.Events["Transfer"], types.Log{
		Topics: []common.Hash{common.HexToHash("0x01")},
	})
	assert.Error(t, err)
}

func TestIsTooManyResultsError(t *testing.T) {
	assert.True(t, isTooManyResultsError(assertErr("query returned more than 10000 results")))
	assert.True(t, isTooManyResultsError(assertErr("exceeded maximum block range")))
	assert.False(t, isTooManyResultsError(assertErr("connection refused")))
	assert.False(t, isTooManyResultsError(nil))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
