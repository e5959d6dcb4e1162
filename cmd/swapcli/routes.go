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

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List candidate routes from all providers",
	Long: `Query every provider for the given pair and amount, and print the
merged route list. The first route shown is the one 'build' would pick
unless --route-id pins another.

Examples:
  swapcli routes --from-chain ethereum --to-chain bsc --amount 0.5 --from-address 0x123...
  swapcli routes --from-chain bsc --to-token 0xMeme... --amount 0.05 --from-address 0x123... --json`,
	Run: runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
	addAssetFlags(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) {
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
		s.Suffix = " Fetching routes..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	routes, err := eng.aggregator.Routes(ctx, input)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		printRoutesJSON(routes)
		return
	}
	printRoutesTable(input, routes)
}

func printRoutesJSON(routes []swap.Route) {
	out := make([]swap.RouteData, 0, len(routes))
	for _, route := range routes {
		out = append(out, route.RouteData())
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func printRoutesTable(input swap.AssetInput, routes []swap.Route) {
	if len(routes) == 0 {
		fmt.Println("\nNo routes found.")
		return
	}

	bold := color.New(color.Bold)
	fmt.Println()
	bold.Printf("%d route(s) for %s %s -> %s\n\n", len(routes),
		input.Amount, tokenLabel(input.FromToken), tokenLabel(input.ToToken))

	for i, route := range routes {
		data := route.RouteData()
		toAmount := formatAmount(data.ToAmount, data.ToToken.Decimals)
		minAmount := formatAmount(data.ToAmountMin, data.ToToken.Decimals)
		marker := " "
		if i == 0 {
			marker = color.GreenString("*")
		}
		fmt.Printf("%s [%s] %s %s (min %s)\n", marker, route.Provider(), toAmount,
			tokenLabel(data.ToToken), minAmount)
		fmt.Printf("    id: %s\n", data.ID)
	}
	fmt.Println()
}

func formatAmount(raw string, decimals int) string {
	amount, err := swap.ParseBig(raw)
	if err != nil {
		return raw
	}
	return swap.FormatUnits(amount, decimals)
}

func tokenLabel(token swap.Token) string {
	if token.Symbol != "" {
		return token.Symbol
	}
	if token.Address == "" {
		return token.ChainID.String()
	}
	return token.Address
}
