package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
)

// decodeTransfer decodes a transfer log using the configured event ABI.
// Indexed inputs come from topics, the rest from log data.
func decodeTransfer(event abi.Event, vLog types.Log) (domain.TransferEvent, error) {
	if len(vLog.Topics) == 0 || vLog.Topics[0] != event.ID {
		return domain.TransferEvent{}, fmt.Errorf("log %s:%d does not match event %s", vLog.TxHash.Hex(), vLog.Index, event.Sig)
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}

	values := make(map[string]interface{}, len(event.Inputs))
	if err := abi.ParseTopicsIntoMap(values, indexed, vLog.Topics[1:]); err != nil {
		return domain.TransferEvent{}, fmt.Errorf("failed to parse topics: %w", err)
	}
	if err := event.Inputs.NonIndexed().UnpackIntoMap(values, vLog.Data); err != nil {
		return domain.TransferEvent{}, fmt.Errorf("failed to unpack log data: %w", err)
	}

	from, err := lookupString(values, "from")
	if err != nil {
		return domain.TransferEvent{}, err
	}
	to, err := lookupString(values, "to")
	if err != nil {
		return domain.TransferEvent{}, err
	}
	tokenID, err := lookupString(values, "tokenId")
	if err != nil {
		return domain.TransferEvent{}, err
	}

	return domain.TransferEvent{
		BlockNumber: vLog.BlockNumber,
		LogIndex:    vLog.Index,
		TxHash:      vLog.TxHash.Hex(),
		FromAddress: from,
		ToAddress:   to,
		TokenID:     tokenID,
	}, nil
}

// lookupString returns the decoded input named name (or _name) in string form
func lookupString(values map[string]interface{}, name string) (string, error) {
	value, ok := values[name]
	if !ok {
		value, ok = values["_"+name]
	}
	if !ok {
		return "", fmt.Errorf("event input %s not found", name)
	}

	switch v := value.(type) {
	case common.Address:
		return v.Hex(), nil
	case *big.Int:
		return v.String(), nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("unsupported type %T for event input %s", value, name)
	}
}
