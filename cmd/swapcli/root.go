package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/aggregator"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/evm"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/fourmeme"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/lifi"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/logging"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/metrics"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/relay"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/routerproto"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/txbuild"
)

var rootCmd = &cobra.Command{
	Use:   "swapcli",
	Short: "A CLI for cross-chain swaps aggregated across LI.FI, Router Protocol and four.meme",
	Long: `swapcli queries multiple swap and bridge providers, merges their routes,
and builds the ordered transactions (approve, then swap or bridge) for the
selected route.

Examples:
  swapcli routes --from-chain ethereum --to-chain bsc --amount 0.5 --from-address 0x... --to-address 0x...
  swapcli quote --from-chain bsc --to-token 0xMeme... --amount 0.05 --from-address 0x... --to-address 0x...
  swapcli build --route-id <id> --from-chain ethereum --to-chain ethereum --to-token 0x... --amount 1 --from-address 0x... --to-address 0x...
  swapcli tokens --chain ethereum
  swapcli status --tx-hash 0x... --from-chain ethereum --to-chain bsc`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

// engine bundles everything a command needs: the provider fan-out, the
// transaction builder, and the raw LI.FI client for token and status
// lookups.
type engine struct {
	logger     *logrus.Logger
	aggregator *aggregator.Aggregator
	builder    *txbuild.Builder
	lifi       *lifi.Client
}

func newEngine(verbose bool) (*engine, error) {
	cfg, err := newConfig()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.LogFormat)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	metrics.RegisterMetrics(logger)

	var relayClient *relay.Client
	if cfg.Relay.BaseURL != "" {
		relayClient = relay.NewClient(cfg.Relay.BaseURL, cfg.Relay.Token)
	}

	lifiClient := lifi.NewClient(lifi.Config{
		BaseURL:    cfg.Lifi.BaseURL,
		Integrator: cfg.Lifi.Integrator,
		Order:      cfg.Lifi.Order,
	}, relayClient)

	routerClient := routerproto.NewClient(routerproto.Config{
		BaseURL:   cfg.Router.BaseURL,
		PartnerID: cfg.Router.PartnerID,
	})

	fourMemeClient := fourmeme.NewClient(fourmeme.Config{
		BaseURL:      cfg.FourMeme.BaseURL,
		TokenManager: cfg.FourMeme.TokenManager,
	})

	agg := aggregator.New(logger, []aggregator.Provider{
		lifi.NewProvider(lifiClient),
		routerproto.NewProvider(routerClient),
		fourmeme.NewProvider(fourMemeClient),
	})

	rpcURLs := map[chain.ID]string{}
	for id, item := range map[chain.ID]rpcItem{
		chain.Ethereum:  cfg.Rpc.Ethereum,
		chain.Optimism:  cfg.Rpc.Optimism,
		chain.BSC:       cfg.Rpc.Bsc,
		chain.Polygon:   cfg.Rpc.Polygon,
		chain.Base:      cfg.Rpc.Base,
		chain.Arbitrum:  cfg.Rpc.Arbitrum,
		chain.Avalanche: cfg.Rpc.Avalanche,
	} {
		if item.URL != "" {
			rpcURLs[id] = item.URL
		}
	}
	evmClient, err := evm.NewClient(rpcURLs)
	if err != nil {
		return nil, fmt.Errorf("failed to init evm client: %w", err)
	}

	return &engine{
		logger:     logger,
		aggregator: agg,
		builder:    txbuild.NewBuilder(evmClient, cfg.Safe.MultiSend),
		lifi:       lifiClient,
	}, nil
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
