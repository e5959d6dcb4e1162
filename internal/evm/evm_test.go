package evm

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
)

func TestPackApprove(t *testing.T) {
	spender := common.HexToAddress("0x4444444444444444444444444444444444444444")

	data, err := PackApprove(spender, big.NewInt(1000000))
	require.NoError(t, err)
	// selector + spender word + amount word
	assert.Len(t, data, 4+32+32)

	encoded := hexutil.Encode(data)
	assert.Contains(t, encoded, "4444444444444444444444444444444444444444")
}

func TestPackApprove_MaxUint256(t *testing.T) {
	spender := common.HexToAddress("0x4444444444444444444444444444444444444444")

	data, err := PackApprove(spender, MaxUint256)
	require.NoError(t, err)

	// The amount word is saturated.
	for _, b := range data[4+32:] {
		assert.Equal(t, byte(0xff), b)
	}
}

func TestNewClient_RejectsNonEvmChain(t *testing.T) {
	_, err := NewClient(map[chain.ID]string{
		chain.Solana: "http://localhost:8899",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not EVM")
}

func TestAllowance_UnconfiguredChain(t *testing.T) {
	client, err := NewClient(nil)
	require.NoError(t, err)

	_, err = client.Allowance(context.Background(), chain.Ethereum,
		"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
		"0x2222222222222222222222222222222222222222",
		"0x4444444444444444444444444444444444444444")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no RPC configured")
}
