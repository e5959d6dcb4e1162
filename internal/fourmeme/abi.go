package fourmeme

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const tokenManagerABI = `[
	{
		"name": "purchaseTokenAMAP",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{"name": "token", "type": "address"},
			{"name": "funds", "type": "uint256"},
			{"name": "minAmount", "type": "uint256"}
		],
		"outputs": []
	},
	{
		"name": "saleToken",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "token", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": []
	}
]`

var tokenManager abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(tokenManagerABI))
	if err != nil {
		panic(fmt.Sprintf("invalid token manager ABI: %v", err))
	}
	tokenManager = parsed
}

func packBuy(token common.Address, funds, minAmount *big.Int) ([]byte, error) {
	data, err := tokenManager.Pack("purchaseTokenAMAP", token, funds, minAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack buy call: %w", err)
	}
	return data, nil
}

func packSell(token common.Address, amount *big.Int) ([]byte, error) {
	data, err := tokenManager.Pack("saleToken", token, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to pack sell call: %w", err)
	}
	return data, nil
}
