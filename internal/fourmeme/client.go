// Package fourmeme integrates the four.meme bonding-curve DEX on BSC.
// There is no generic route search: each token trades against the native
// asset in a single pool whose reserves come from the metadata endpoint.
package fourmeme

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/httpx"
)

type Config struct {
	BaseURL string
	// TokenManager is the contract all buys and sells go through.
	TokenManager string
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
	}
}

// TokenMeta describes a bonding-curve pool. TokenReserve and
// NativeReserve are decimal strings in whole-token units; MaxBuy (when
// non-empty and non-zero) caps a single buy in native units.
type TokenMeta struct {
	Address       string `json:"address"`
	Name          string `json:"name"`
	ShortName     string `json:"shortName"`
	Symbol        string `json:"symbol"`
	Decimals      int    `json:"decimals"`
	TokenReserve  string `json:"tamount"`
	NativeReserve string `json:"bamount"`
	MaxBuy        string `json:"maxBuy,omitempty"`
	Status        string `json:"status,omitempty"`
	Image         string `json:"image,omitempty"`
}

type tokenGetResponse struct {
	Code int       `json:"code"`
	Msg  string    `json:"msg,omitempty"`
	Data TokenMeta `json:"data"`
}

// GetTokenMeta fetches the pool metadata for a bonding-curve token.
func (c *Client) GetTokenMeta(ctx context.Context, address string) (*TokenMeta, error) {
	resp, err := httpx.Call[tokenGetResponse](
		ctx,
		http.MethodGet,
		c.cfg.BaseURL+"/meme-api/v1/private/token/get",
		nil,
		nil,
		map[string]string{"address": address},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get token meta: %w", err)
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("token meta request rejected: code=%d msg=%s", resp.Code, resp.Msg)
	}
	return &resp.Data, nil
}
