package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Fetch the best single route for a swap",
	Long: `Query every provider and print the route the aggregator would execute.

Examples:
  swapcli quote --from-chain ethereum --to-token 0xA0b8... --amount 1 --from-address 0x123...
  swapcli quote --from-chain bsc --to-token 0xMeme... --amount 0.05 --from-address 0x123... --json`,
	Run: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	addAssetFlags(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	input, err := buildInput()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	eng, err := newEngine(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching quote..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	route, err := eng.aggregator.BestRoute(ctx, input)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if route == nil {
		fmt.Println("\nNo route found.")
		os.Exit(1)
	}

	data := route.RouteData()
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(data)
		return
	}

	bold := color.New(color.Bold)
	fmt.Println()
	bold.Printf("Best route via %s\n\n", route.Provider())
	fmt.Printf("  Send:     %s %s on %s\n",
		formatAmount(data.FromAmount, data.FromToken.Decimals),
		tokenLabel(data.FromToken), data.FromChainID)
	fmt.Printf("  Receive:  %s %s on %s\n",
		formatAmount(data.ToAmount, data.ToToken.Decimals),
		tokenLabel(data.ToToken), data.ToChainID)
	fmt.Printf("  Minimum:  %s %s\n",
		formatAmount(data.ToAmountMin, data.ToToken.Decimals), tokenLabel(data.ToToken))
	fmt.Printf("  Route id: %s\n\n", data.ID)
}
