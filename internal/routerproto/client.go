// Package routerproto integrates the Router Protocol pathfinder for
// cross-chain swaps between EVM chains.
package routerproto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/httpx"
)

type Config struct {
	BaseURL   string
	PartnerID int64
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
	}
}

type AssetInfo struct {
	Decimals   int    `json:"decimals"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	ChainID    string `json:"chainId"`
	Address    string `json:"address"`
	ResourceID string `json:"resourceID,omitempty"`
}

type Endpoint struct {
	ChainID     string    `json:"chainId"`
	Asset       AssetInfo `json:"asset"`
	TokenAmount string    `json:"tokenAmount"`
}

// Quote is the pathfinder quote. Raw retains the untouched response body
// because the transaction endpoint expects the whole quote echoed back.
type Quote struct {
	FlowType      string   `json:"flowType,omitempty"`
	Source        Endpoint `json:"source"`
	Destination   Endpoint `json:"destination"`
	AllowanceTo   string   `json:"allowanceTo,omitempty"`
	EstimatedTime int64    `json:"estimatedTime,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type quoteRequest struct {
	FromTokenAddress string
	ToTokenAddress   string
	Amount           string
	FromChainID      string
	ToChainID        string
	// SlippageTolerance is the UI-facing percent, e.g. "1" for 1%.
	SlippageTolerance string
}

// getQuote fetches a pathfinder quote. A 404 means no route exists and is
// reported as (nil, nil).
func (c *Client) getQuote(ctx context.Context, req quoteRequest) (*Quote, error) {
	params := map[string]string{
		"fromTokenAddress": req.FromTokenAddress,
		"toTokenAddress":   req.ToTokenAddress,
		"amount":           req.Amount,
		"fromTokenChainId": req.FromChainID,
		"toTokenChainId":   req.ToChainID,
		"partnerId":        strconv.FormatInt(c.cfg.PartnerID, 10),
	}
	if req.SlippageTolerance != "" {
		params["slippageTolerance"] = req.SlippageTolerance
	}

	body, err := httpx.CallRaw(ctx, http.MethodGet, c.cfg.BaseURL+"/api/v2/quote", nil, nil, params)
	if err != nil {
		if httpx.IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	var quote Quote
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	quote.Raw = body
	return &quote, nil
}

type Txn struct {
	From  string `json:"from,omitempty"`
	To    string `json:"to"`
	Value string `json:"value,omitempty"`
	Data  string `json:"data"`
}

type transactionResponse struct {
	Txn         Txn    `json:"txn"`
	AllowanceTo string `json:"allowanceTo,omitempty"`
}

// getTransaction turns a quote into an executable transaction. The quote
// body is echoed back verbatim with the sender and receiver attached.
func (c *Client) getTransaction(ctx context.Context, quote *Quote, sender, receiver string) (*transactionResponse, error) {
	var payload map[string]any
	if err := json.Unmarshal(quote.Raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to rebuild quote payload: %w", err)
	}
	payload["senderAddress"] = sender
	payload["receiverAddress"] = receiver

	resp, err := httpx.Call[transactionResponse](ctx, http.MethodPost, c.cfg.BaseURL+"/api/v2/transaction", nil, payload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &resp, nil
}
