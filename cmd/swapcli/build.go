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
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/txbuild"
)

var (
	routeIDFlag          string
	safeFlag             bool
	infiniteApprovalFlag bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the signable transactions for a route",
	Long: `Fetch routes, pick one, and print the ordered transactions to sign:
an approve per step when the live allowance is short, then the swap or
bridge call. --route-id pins a specific route from a prior 'routes' run;
without it the first route wins.

EVM allowance checks need an RPC URL for the source chain, e.g.
RPC_ETHEREUM_URL.

Examples:
  swapcli build --from-chain ethereum --to-token 0xA0b8... --amount 1 --from-address 0x123...
  swapcli build --route-id <id> --safe --from-chain ethereum --to-chain bsc --amount 0.5 --from-address 0x123...`,
	Run: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addAssetFlags(buildCmd)

	buildCmd.Flags().StringVar(&routeIDFlag, "route-id", "", "Pin a specific route id")
	buildCmd.Flags().BoolVar(&safeFlag, "safe", false, "Batch multi-transaction output for a Safe wallet")
	buildCmd.Flags().BoolVar(&infiniteApprovalFlag, "infinite-approval", false, "Approve max uint256 instead of the exact amount")
}

func runBuild(cmd *cobra.Command, args []string) {
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
	if routeIDFlag != "" {
		eng.aggregator.Selector().Pin(routeIDFlag)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Building transactions..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	txs, err := buildTransactions(ctx, eng, input)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(txs)
		return
	}
	printTransactions(txs)
}

func buildTransactions(ctx context.Context, eng *engine, input swap.AssetInput) ([]swap.Transaction, error) {
	route, err := eng.aggregator.BestRoute(ctx, input)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, fmt.Errorf("no route found")
	}

	wallet := swap.Wallet{
		Address: input.FromAddress,
		IsSafe:  safeFlag,
	}
	return eng.builder.Build(ctx, wallet, route, eng.aggregator, txbuild.Options{
		InfiniteApproval: infiniteApprovalFlag,
	})
}

func printTransactions(txs []swap.Transaction) {
	bold := color.New(color.Bold)
	fmt.Println()
	bold.Printf("%d transaction(s) to sign\n\n", len(txs))

	for i, tx := range txs {
		fmt.Printf("%d. [%s] chain %s\n", i+1, tx.Type, tx.ChainID)
		if tx.Data.To != "" {
			fmt.Printf("   to:    %s\n", tx.Data.To)
		}
		if tx.Data.Value != nil && tx.Data.Value.Sign() > 0 {
			fmt.Printf("   value: %s\n", tx.Data.Value)
		}
		fmt.Printf("   data:  %s\n", truncate(tx.Data.Data, 74))
		if tx.BridgeMetadata != nil {
			fmt.Printf("   bridge: %s -> %s on %s\n", tx.BridgeMetadata.BridgeID,
				tx.BridgeMetadata.ExpectedRecipientAddress, tx.BridgeMetadata.ChainID)
		}
	}
	fmt.Println()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
