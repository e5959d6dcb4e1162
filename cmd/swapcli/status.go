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

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/graceful"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/metrics"
)

var (
	statusTxHashFlag    string
	statusBridgeFlag    string
	statusFromChainFlag string
	statusToChainFlag   string
	statusWaitFlag      bool
	metricsListenFlag   string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the delivery status of a bridge transfer",
	Long: `Poll the bridge delivery status of a sent transaction.

Examples:
  swapcli status --tx-hash 0xabc... --from-chain ethereum --to-chain bsc
  swapcli status --tx-hash 0xabc... --from-chain ethereum --to-chain bsc --bridge stargate --wait`,
	Run: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusTxHashFlag, "tx-hash", "", "Sending transaction hash (REQUIRED)")
	statusCmd.Flags().StringVar(&statusBridgeFlag, "bridge", "", "Bridge tool id from the route's bridge metadata")
	statusCmd.Flags().StringVar(&statusFromChainFlag, "from-chain", "", "Source chain name or id (REQUIRED)")
	statusCmd.Flags().StringVar(&statusToChainFlag, "to-chain", "", "Destination chain name or id (REQUIRED)")
	statusCmd.Flags().BoolVar(&statusWaitFlag, "wait", false, "Keep polling until the transfer settles")
	statusCmd.Flags().StringVar(&metricsListenFlag, "metrics-listen", "", "Expose Prometheus metrics on this address while polling (e.g. :9100)")
}

func runStatus(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if statusTxHashFlag == "" || statusFromChainFlag == "" || statusToChainFlag == "" {
		printError(fmt.Errorf("--tx-hash, --from-chain and --to-chain are required"))
		os.Exit(1)
	}
	fromChain, err := chain.FromString(statusFromChainFlag)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	toChain, err := chain.FromString(statusToChainFlag)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	eng, err := newEngine(verbose)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if metricsListenFlag != "" {
		go func() {
			if err := metrics.Serve(metricsListenFlag, eng.logger); err != nil {
				eng.logger.WithError(err).Warn("metrics listener stopped")
			}
		}()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Checking transfer status..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	sigCh := graceful.MakeSigintChan()

	for {
		resp, err := eng.lifi.GetStatus(ctx, statusBridgeFlag, int64(fromChain), int64(toChain), statusTxHashFlag)
		if err != nil {
			if !jsonOutput {
				s.Stop()
			}
			printError(err)
			os.Exit(1)
		}

		settled := resp.Status == "DONE" || resp.Status == "FAILED"
		if settled || !statusWaitFlag {
			if !jsonOutput {
				s.Stop()
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				_ = enc.Encode(resp)
			} else {
				printStatus(resp.Status, resp.Substatus, resp.ReceivingT)
			}
			if resp.Status == "FAILED" {
				os.Exit(1)
			}
			return
		}

		select {
		case <-ctx.Done():
			if !jsonOutput {
				s.Stop()
			}
			printError(ctx.Err())
			os.Exit(1)
		case <-sigCh:
			if !jsonOutput {
				s.Stop()
			}
			fmt.Println("\nInterrupted.")
			return
		case <-time.After(10 * time.Second):
		}
	}
}

func printStatus(status, substatus, receivingTx string) {
	fmt.Println()
	switch status {
	case "DONE":
		color.Green("Transfer complete.")
	case "FAILED":
		color.Red("Transfer failed.")
	default:
		fmt.Printf("Transfer status: %s\n", status)
	}
	if substatus != "" {
		fmt.Printf("  substatus: %s\n", substatus)
	}
	if receivingTx != "" {
		fmt.Printf("  receiving tx: %s\n", receivingTx)
	}
	fmt.Println()
}
