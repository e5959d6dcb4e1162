package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

var (
	fromChainFlag    string
	toChainFlag      string
	fromTokenFlag    string
	toTokenFlag      string
	fromDecimalsFlag int
	toDecimalsFlag   int
	amountFlag       string
	fromAddressFlag  string
	toAddressFlag    string
	slippageFlag     float64
	feeBpsFlag       int
)

func addAssetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&fromChainFlag, "from-chain", "", "Source chain name or id (REQUIRED)")
	cmd.Flags().StringVar(&toChainFlag, "to-chain", "", "Destination chain name or id (defaults to --from-chain)")
	cmd.Flags().StringVar(&fromTokenFlag, "from-token", "", "Source token address (empty for the native asset)")
	cmd.Flags().StringVar(&toTokenFlag, "to-token", "", "Destination token address (empty for the native asset)")
	cmd.Flags().IntVar(&fromDecimalsFlag, "from-decimals", 18, "Source token decimals")
	cmd.Flags().IntVar(&toDecimalsFlag, "to-decimals", 18, "Destination token decimals")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "Amount to swap, in source token units (REQUIRED)")
	cmd.Flags().StringVar(&fromAddressFlag, "from-address", "", "Sender address (REQUIRED)")
	cmd.Flags().StringVar(&toAddressFlag, "to-address", "", "Recipient address (defaults to --from-address)")
	cmd.Flags().Float64Var(&slippageFlag, "slippage", 1, "Max slippage in percent")
	cmd.Flags().IntVar(&feeBpsFlag, "fee-bps", 0, "Platform fee in basis points")
}

func resolveToken(chainID chain.ID, address string, decimals int) (swap.Token, error) {
	if chain.IsNativeAsset(address) {
		symbol, err := chainID.NativeSymbol()
		if err != nil {
			return swap.Token{}, err
		}
		nd, err := chainID.NativeDecimals()
		if err != nil {
			return swap.Token{}, err
		}
		return swap.Token{
			ChainID:  chainID,
			Symbol:   symbol,
			Decimals: nd,
		}, nil
	}
	return swap.Token{
		ChainID:  chainID,
		Address:  address,
		Decimals: decimals,
	}, nil
}

func buildInput() (swap.AssetInput, error) {
	if fromChainFlag == "" {
		return swap.AssetInput{}, fmt.Errorf("--from-chain is required")
	}
	fromChain, err := chain.FromString(fromChainFlag)
	if err != nil {
		return swap.AssetInput{}, err
	}
	toChain := fromChain
	if toChainFlag != "" {
		toChain, err = chain.FromString(toChainFlag)
		if err != nil {
			return swap.AssetInput{}, err
		}
	}

	fromToken, err := resolveToken(fromChain, fromTokenFlag, fromDecimalsFlag)
	if err != nil {
		return swap.AssetInput{}, err
	}
	toToken, err := resolveToken(toChain, toTokenFlag, toDecimalsFlag)
	if err != nil {
		return swap.AssetInput{}, err
	}

	toAddress := toAddressFlag
	if toAddress == "" {
		toAddress = fromAddressFlag
	}

	input := swap.AssetInput{
		FromToken:   fromToken,
		ToToken:     toToken,
		FromAddress: fromAddressFlag,
		ToAddress:   toAddress,
		Amount:      amountFlag,
		Slippage:    slippageFlag,
		FeeBps:      feeBpsFlag,
	}
	if err := input.Validate(); err != nil {
		return swap.AssetInput{}, err
	}
	return input, nil
}
