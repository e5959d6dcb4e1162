package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/lifi"
)

var (
	tokensChainFlag  string
	tokensSymbolFlag string
)

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List known tokens for the supported chains",
	Long: `List the tokens the routing layer knows about, with canonical chain ids
and addresses (the native asset shows an empty address).

Examples:
  swapcli tokens
  swapcli tokens --chain ethereum
  swapcli tokens --symbol USDC`,
	Run: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&tokensChainFlag, "chain", "", "Filter by chain name or id")
	tokensCmd.Flags().StringVar(&tokensSymbolFlag, "symbol", "", "Filter by token symbol")
}

func runTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	chains := chain.Supported()
	if tokensChainFlag != "" {
		id, err := chain.FromString(tokensChainFlag)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
		chains = []chain.ID{id}
	}

	eng, err := newEngine(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching tokens..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	ids := make([]int64, 0, len(chains))
	for _, id := range chains {
		ids = append(ids, int64(id))
	}
	tokens, err := eng.lifi.GetCanonicalTokens(ctx, ids)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if tokensSymbolFlag != "" {
		for id, list := range tokens {
			var filtered []lifi.TokenInfo
			for _, token := range list {
				if strings.EqualFold(token.Symbol, tokensSymbolFlag) {
					filtered = append(filtered, token)
				}
			}
			tokens[id] = filtered
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(tokens)
		return
	}

	bold := color.New(color.Bold)
	chainIDs := make([]int64, 0, len(tokens))
	for id := range tokens {
		chainIDs = append(chainIDs, id)
	}
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	fmt.Println()
	for _, id := range chainIDs {
		list := tokens[id]
		if len(list) == 0 {
			continue
		}
		bold.Printf("%s (%d tokens)\n", chain.ID(id), len(list))
		for _, token := range list {
			address := token.Address
			if address == "" {
				address = "(native)"
			}
			fmt.Printf("  %-10s %s\n", token.Symbol, address)
		}
		fmt.Println()
	}
}
