package txbuild

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

const multiSendABI = `[
	{
		"name": "multiSend",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [{"name": "transactions", "type": "bytes"}],
		"outputs": []
	}
]`

var multiSend abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(multiSendABI))
	if err != nil {
		panic(fmt.Sprintf("invalid multisend ABI: %v", err))
	}
	multiSend = parsed
}

// batchForSafe collapses a multi-transaction step sequence into a single
// MultiSendCallOnly call so a Safe wallet signs once. Ordering inside the
// packed payload preserves the approve-before-swap invariant.
func batchForSafe(txs []swap.Transaction, multiSendAddress string) (swap.Transaction, error) {
	if multiSendAddress == "" {
		return swap.Transaction{}, fmt.Errorf("multisend address not configured")
	}
	if len(txs) < 2 {
		return swap.Transaction{}, fmt.Errorf("nothing to batch")
	}

	chainID := txs[0].ChainID
	totalValue := big.NewInt(0)
	var packed []byte

	for _, tx := range txs {
		if !tx.ChainID.IsEvm() {
			return swap.Transaction{}, fmt.Errorf("cannot batch non-EVM transaction on %s", tx.ChainID)
		}
		if tx.ChainID != chainID {
			return swap.Transaction{}, fmt.Errorf("cannot batch across chains: %s vs %s", chainID, tx.ChainID)
		}

		data, err := hexutil.Decode(tx.Data.Data)
		if err != nil {
			return swap.Transaction{}, fmt.Errorf("failed to decode call data: %w", err)
		}
		value := tx.Data.Value
		if value == nil {
			value = big.NewInt(0)
		}
		totalValue = new(big.Int).Add(totalValue, value)

		// operation (CALL) | to | value | data length | data
		packed = append(packed, 0x00)
		packed = append(packed, common.HexToAddress(tx.Data.To).Bytes()...)
		packed = append(packed, common.LeftPadBytes(value.Bytes(), 32)...)
		packed = append(packed, common.LeftPadBytes(big.NewInt(int64(len(data))).Bytes(), 32)...)
		packed = append(packed, data...)
	}

	callData, err := multiSend.Pack("multiSend", packed)
	if err != nil {
		return swap.Transaction{}, fmt.Errorf("failed to pack multisend call: %w", err)
	}

	batched := swap.Transaction{
		Type:    swap.TransactionSwap,
		ChainID: chainID,
		Data: swap.CallData{
			To:    multiSendAddress,
			Value: totalValue,
			Data:  hexutil.Encode(callData),
		},
	}

	// The batch inherits the terminal swap/bridge classification.
	for _, tx := range txs {
		if tx.Type == swap.TransactionBridge {
			batched.Type = swap.TransactionBridge
			batched.BridgeMetadata = tx.BridgeMetadata
		}
	}
	return batched, nil
}
