// Package evm reads live ERC-20 allowances and packs approval call data.
package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
)

const erc20ABI = `[
	{
		"name": "allowance",
		"type": "function",
		"stateMutability": "view",
		"inputs": [
			{"name": "owner", "type": "address"},
			{"name": "spender", "type": "address"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"name": "approve",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	}
]`

var erc20 abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(fmt.Sprintf("invalid erc20 ABI: %v", err))
	}
	erc20 = parsed
}

// MaxUint256 is the infinite-approval sentinel.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// PackApprove builds approve(spender, amount) call data.
func PackApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	data, err := erc20.Pack("approve", spender, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack approve call: %w", err)
	}
	return data, nil
}

// Client reads on-chain state over one RPC connection per chain.
type Client struct {
	rpcs map[chain.ID]*ethclient.Client
}

func NewClient(rpcURLs map[chain.ID]string) (*Client, error) {
	rpcs := make(map[chain.ID]*ethclient.Client, len(rpcURLs))
	for c, url := range rpcURLs {
		if !c.IsEvm() {
			return nil, fmt.Errorf("chain %s is not EVM", c)
		}
		rpc, err := ethclient.Dial(url)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s RPC: %w", c, err)
		}
		rpcs[c] = rpc
	}
	return &Client{
		rpcs: rpcs,
	}, nil
}

// Allowance returns allowance(owner, spender) on the given token.
func (c *Client) Allowance(ctx context.Context, chainID chain.ID, token, owner, spender string) (*big.Int, error) {
	rpc, ok := c.rpcs[chainID]
	if !ok {
		return nil, fmt.Errorf("no RPC configured for chain %s", chainID)
	}

	callData, err := erc20.Pack("allowance", common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, fmt.Errorf("failed to pack allowance call: %w", err)
	}

	tokenAddr := common.HexToAddress(token)
	result, err := rpc.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddr,
		Data: callData,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check allowance: %w", err)
	}

	unpacked, err := erc20.Unpack("allowance", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack allowance: %w", err)
	}
	allowance, ok := unpacked[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected allowance result type %T", unpacked[0])
	}
	return allowance, nil
}
