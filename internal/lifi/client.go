package lifi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/httpx"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/metrics"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/relay"
)

// Config holds the endpoint and partner parameters for the LI.FI
// integration. It is injected rather than read from package globals so
// tests can point the client at a mock server.
type Config struct {
	BaseURL    string
	Integrator string
	// Order is the provider-side route ranking, e.g. "RECOMMENDED" or
	// "CHEAPEST".
	Order string
}

type Client struct {
	cfg   Config
	relay *relay.Client
}

// NewClient creates a LI.FI API client. relayClient may be nil; when set
// it is used as a one-shot fallback on HTTP 429.
func NewClient(cfg Config, relayClient *relay.Client) *Client {
	if cfg.Order == "" {
		cfg.Order = "RECOMMENDED"
	}
	return &Client{
		cfg:   cfg,
		relay: relayClient,
	}
}

type TokenInfo struct {
	ChainID  int64  `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
	Name     string `json:"name"`
	LogoURI  string `json:"logoURI,omitempty"`
	PriceUSD string `json:"priceUSD,omitempty"`
}

type Action struct {
	FromChainID int64     `json:"fromChainId"`
	FromAmount  string    `json:"fromAmount"`
	FromToken   TokenInfo `json:"fromToken"`
	FromAddress string    `json:"fromAddress,omitempty"`
	ToChainID   int64     `json:"toChainId"`
	ToToken     TokenInfo `json:"toToken"`
	ToAddress   string    `json:"toAddress,omitempty"`
	Slippage    float64   `json:"slippage,omitempty"`
}

type Estimate struct {
	Tool            string `json:"tool"`
	FromAmount      string `json:"fromAmount"`
	FromAmountUSD   string `json:"fromAmountUSD,omitempty"`
	ToAmount        string `json:"toAmount"`
	ToAmountMin     string `json:"toAmountMin"`
	ToAmountUSD     string `json:"toAmountUSD,omitempty"`
	ApprovalAddress string `json:"approvalAddress,omitempty"`
}

type TransactionRequest struct {
	To      string `json:"to"`
	Value   string `json:"value"`
	Data    string `json:"data"`
	ChainID int64  `json:"chainId,omitempty"`
}

type Step struct {
	ID                 string              `json:"id"`
	Type               string              `json:"type"`
	Tool               string              `json:"tool"`
	Action             Action              `json:"action"`
	Estimate           Estimate            `json:"estimate"`
	TransactionRequest *TransactionRequest `json:"transactionRequest,omitempty"`
}

type Route struct {
	ID            string    `json:"id"`
	FromChainID   int64     `json:"fromChainId"`
	FromAmount    string    `json:"fromAmount"`
	FromAmountUSD string    `json:"fromAmountUSD,omitempty"`
	FromToken     TokenInfo `json:"fromToken"`
	FromAddress   string    `json:"fromAddress"`
	ToChainID     int64     `json:"toChainId"`
	ToAmount      string    `json:"toAmount"`
	ToAmountMin   string    `json:"toAmountMin"`
	ToAmountUSD   string    `json:"toAmountUSD,omitempty"`
	ToToken       TokenInfo `json:"toToken"`
	ToAddress     string    `json:"toAddress"`
	Steps         []Step    `json:"steps"`
}

type quoteRequest struct {
	FromChain   int64
	ToChain     int64
	FromToken   string
	ToToken     string
	FromAmount  string
	FromAddress string
	ToAddress   string
	// Slippage and Fee are fractions in [0, 1).
	Slippage float64
	Fee      float64
}

func (r quoteRequest) params(cfg Config) map[string]string {
	params := map[string]string{
		"fromChain":   strconv.FormatInt(r.FromChain, 10),
		"toChain":     strconv.FormatInt(r.ToChain, 10),
		"fromToken":   r.FromToken,
		"toToken":     r.ToToken,
		"fromAmount":  r.FromAmount,
		"fromAddress": r.FromAddress,
		"toAddress":   r.ToAddress,
		"slippage":    strconv.FormatFloat(r.Slippage, 'f', -1, 64),
		"order":       cfg.Order,
	}
	if r.Fee > 0 {
		params["fee"] = strconv.FormatFloat(r.Fee, 'f', -1, 64)
	}
	if cfg.Integrator != "" {
		params["integrator"] = cfg.Integrator
	}
	return params
}

type routesOptions struct {
	Slippage         float64 `json:"slippage"`
	Fee              float64 `json:"fee,omitempty"`
	Integrator       string  `json:"integrator,omitempty"`
	Order            string  `json:"order,omitempty"`
	AllowSwitchChain bool    `json:"allowSwitchChain"`
}

type routesRequest struct {
	FromChainID      int64         `json:"fromChainId"`
	ToChainID        int64         `json:"toChainId"`
	FromTokenAddress string        `json:"fromTokenAddress"`
	ToTokenAddress   string        `json:"toTokenAddress"`
	FromAmount       string        `json:"fromAmount"`
	FromAddress      string        `json:"fromAddress"`
	ToAddress        string        `json:"toAddress"`
	Options          routesOptions `json:"options"`
}

type routesResponse struct {
	Routes []Route `json:"routes"`
}

// getQuote fetches a single best quote. A 404 means no route exists and
// is reported as (nil, nil); a 429 is retried once through the relay.
func (c *Client) getQuote(ctx context.Context, req quoteRequest) (*Step, error) {
	params := req.params(c.cfg)

	step, err := httpx.Call[Step](ctx, http.MethodGet, c.cfg.BaseURL+"/v1/quote", nil, nil, params)
	if err == nil {
		return &step, nil
	}
	if httpx.IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if httpx.IsStatus(err, http.StatusTooManyRequests) && c.relay != nil {
		metrics.ObserveRelayFallback("lifi", "quote")
		body, rerr := c.relay.GetLifiQuote(ctx, params)
		if rerr != nil {
			return nil, fmt.Errorf("rate limited and relay fallback failed: %w", rerr)
		}
		var relayed Step
		if uerr := json.Unmarshal(body, &relayed); uerr != nil {
			return nil, fmt.Errorf("failed to unmarshal relayed quote: %w", uerr)
		}
		return &relayed, nil
	}
	return nil, fmt.Errorf("failed to get quote: %w", err)
}

// getRoutes fetches candidate routes via the advanced routes endpoint,
// with the same one-shot 429 relay fallback as getQuote.
func (c *Client) getRoutes(ctx context.Context, req routesRequest) ([]Route, error) {
	resp, err := httpx.Call[routesResponse](ctx, http.MethodPost, c.cfg.BaseURL+"/v1/advanced/routes", nil, req, nil)
	if err == nil {
		return resp.Routes, nil
	}
	if httpx.IsStatus(err, http.StatusTooManyRequests) && c.relay != nil {
		metrics.ObserveRelayFallback("lifi", "routes")
		body, rerr := c.relay.GetLifiRoute(ctx, req)
		if rerr != nil {
			return nil, fmt.Errorf("rate limited and relay fallback failed: %w", rerr)
		}
		var relayed routesResponse
		if uerr := json.Unmarshal(body, &relayed); uerr != nil {
			return nil, fmt.Errorf("failed to unmarshal relayed routes: %w", uerr)
		}
		return relayed.Routes, nil
	}
	return nil, fmt.Errorf("failed to get routes: %w", err)
}

// getStepTransaction populates the transaction request for one route step.
func (c *Client) getStepTransaction(ctx context.Context, step Step) (*Step, error) {
	resp, err := httpx.Call[Step](ctx, http.MethodPost, c.cfg.BaseURL+"/v1/advanced/stepTransaction", nil, step, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get step transaction: %w", err)
	}
	return &resp, nil
}

type tokensResponse struct {
	Tokens map[string][]TokenInfo `json:"tokens"`
}

// GetTokens returns the provider's token list for the given chains, keyed
// by canonical chain id.
func (c *Client) GetTokens(ctx context.Context, chains []int64) (map[int64][]TokenInfo, error) {
	ids := make([]string, 0, len(chains))
	for _, id := range chains {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	resp, err := httpx.Call[tokensResponse](ctx, http.MethodGet, c.cfg.BaseURL+"/v1/tokens", nil, nil, map[string]string{
		"chains": strings.Join(ids, ","),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens: %w", err)
	}

	result := make(map[int64][]TokenInfo, len(resp.Tokens))
	for key, tokens := range resp.Tokens {
		id, er := strconv.ParseInt(key, 10, 64)
		if er != nil {
			return nil, fmt.Errorf("unexpected chain key %q: %w", key, er)
		}
		result[id] = tokens
	}
	return result, nil
}

// GetCanonicalTokens is GetTokens with chain ids and token addresses
// translated to canonical form on both sides of the call.
func (c *Client) GetCanonicalTokens(ctx context.Context, chains []int64) (map[int64][]TokenInfo, error) {
	providerIDs := make([]int64, 0, len(chains))
	for _, id := range chains {
		providerIDs = append(providerIDs, toProviderChainID(chain.ID(id)))
	}

	tokens, err := c.GetTokens(ctx, providerIDs)
	if err != nil {
		return nil, err
	}

	result := make(map[int64][]TokenInfo, len(tokens))
	for providerID, list := range tokens {
		canonical := fromProviderChainID(providerID)
		out := make([]TokenInfo, 0, len(list))
		for _, token := range list {
			token.ChainID = int64(canonical)
			token.Address = fromProviderAddress(canonical, token.Address)
			out = append(out, token)
		}
		result[int64(canonical)] = out
	}
	return result, nil
}

type StatusResponse struct {
	Status     string `json:"status"`
	Substatus  string `json:"substatus,omitempty"`
	Tool       string `json:"tool,omitempty"`
	FromChain  int64  `json:"fromChainId,omitempty"`
	ToChain    int64  `json:"toChainId,omitempty"`
	SendingTx  string `json:"sendingTxHash,omitempty"`
	ReceivingT string `json:"receivingTxHash,omitempty"`
}

// GetStatus polls the delivery status of a bridge transfer.
func (c *Client) GetStatus(ctx context.Context, bridge string, fromChain, toChain int64, txHash string) (*StatusResponse, error) {
	params := map[string]string{
		"txHash":    txHash,
		"fromChain": strconv.FormatInt(fromChain, 10),
		"toChain":   strconv.FormatInt(toChain, 10),
	}
	if bridge != "" {
		params["bridge"] = bridge
	}

	resp, err := httpx.Call[StatusResponse](ctx, http.MethodGet, c.cfg.BaseURL+"/v1/status", nil, nil, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &resp, nil
}
