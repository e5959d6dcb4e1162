package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
)

func validInput() AssetInput {
	return AssetInput{
		FromToken:   Token{ChainID: chain.Ethereum, Symbol: "ETH", Decimals: 18},
		ToToken:     Token{ChainID: chain.Ethereum, Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Symbol: "USDC", Decimals: 6},
		FromAddress: "0x2222222222222222222222222222222222222222",
		ToAddress:   "0x2222222222222222222222222222222222222222",
		Amount:      "1",
		Slippage:    1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AssetInput)
		wantErr bool
	}{
		{name: "valid", mutate: func(in *AssetInput) {}},
		{name: "zero amount", mutate: func(in *AssetInput) { in.Amount = "0" }, wantErr: true},
		{name: "negative amount", mutate: func(in *AssetInput) { in.Amount = "-1" }, wantErr: true},
		{name: "garbage amount", mutate: func(in *AssetInput) { in.Amount = "abc" }, wantErr: true},
		{name: "missing destination", mutate: func(in *AssetInput) { in.ToAddress = "" }, wantErr: true},
		{name: "unsupported chain", mutate: func(in *AssetInput) { in.FromToken.ChainID = 999 }, wantErr: true},
		{
			name: "same asset both sides",
			mutate: func(in *AssetInput) {
				in.ToToken = in.FromToken
			},
			wantErr: true,
		},
		{
			name: "same asset differing in case",
			mutate: func(in *AssetInput) {
				in.FromToken = Token{ChainID: chain.Ethereum, Address: "0xA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48", Decimals: 6}
			},
			wantErr: true,
		},
		{name: "negative slippage", mutate: func(in *AssetInput) { in.Slippage = -1 }, wantErr: true},
		{name: "slippage too large", mutate: func(in *AssetInput) { in.Slippage = 100 }, wantErr: true},
		{name: "fee too large", mutate: func(in *AssetInput) { in.FeeBps = 10000 }, wantErr: true},
		{
			name: "cross chain same address is fine",
			mutate: func(in *AssetInput) {
				in.ToToken = Token{ChainID: chain.BSC, Symbol: "BNB", Decimals: 18}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			err := input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	input := validInput()
	input.Slippage = 1.5
	input.FeeBps = 25

	assert.InDelta(t, 0.015, input.SlippageFraction(), 1e-9)
	assert.Equal(t, int64(150), input.SlippageBps())
	assert.InDelta(t, 0.0025, input.FeeFraction(), 1e-9)
	assert.False(t, input.IsCrossChain())

	input.ToToken.ChainID = chain.Solana
	assert.True(t, input.IsCrossChain())

	amount, err := input.FromAmount()
	assert.NoError(t, err)
	assert.Equal(t, "1000000000000000000", amount.String())
}
