package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/logging"
)

type config struct {
	LogFormat logging.LogFormat `envconfig:"LOG_FORMAT" default:"text"`
	Lifi      lifiConfig
	Router    routerConfig
	FourMeme  fourMemeConfig
	Relay     relayConfig
	Rpc       rpc
	Safe      safeConfig
}

type lifiConfig struct {
	BaseURL    string `envconfig:"LIFI_BASE_URL" default:"https://li.quest"`
	Integrator string `envconfig:"LIFI_INTEGRATOR"`
	Order      string `envconfig:"LIFI_ORDER" default:"RECOMMENDED"`
}

type routerConfig struct {
	BaseURL   string `envconfig:"ROUTER_BASE_URL" default:"https://api-beta.pathfinder.routerprotocol.com"`
	PartnerID int64  `envconfig:"ROUTER_PARTNER_ID"`
}

type fourMemeConfig struct {
	BaseURL      string `envconfig:"FOURMEME_BASE_URL" default:"https://four.meme"`
	TokenManager string `envconfig:"FOURMEME_TOKEN_MANAGER" default:"0x5c952063c7fc8610FFDB798152D69F0B9550762b"`
}

type relayConfig struct {
	BaseURL string `envconfig:"RELAY_BASE_URL"`
	Token   string `envconfig:"RELAY_TOKEN"`
}

type rpc struct {
	Ethereum  rpcItem `envconfig:"RPC_ETHEREUM"`
	Optimism  rpcItem `envconfig:"RPC_OPTIMISM"`
	Bsc       rpcItem `envconfig:"RPC_BSC"`
	Polygon   rpcItem `envconfig:"RPC_POLYGON"`
	Base      rpcItem `envconfig:"RPC_BASE"`
	Arbitrum  rpcItem `envconfig:"RPC_ARBITRUM"`
	Avalanche rpcItem `envconfig:"RPC_AVALANCHE"`
}

type rpcItem struct {
	URL string
}

type safeConfig struct {
	MultiSend string `envconfig:"SAFE_MULTI_SEND" default:"0x40A2aCCbd92BCA938b02010E17A5b8929b49130D"`
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
