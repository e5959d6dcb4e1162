// Package relay is the authenticated backend relay used as a one-shot
// fallback when a provider rejects a direct call with HTTP 429. It mirrors
// the provider's quote and route endpoints behind the wallet backend.
package relay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/httpx"
)

type Client struct {
	baseURL string
	token   string
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
	}
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.token,
	}
}

// GetLifiQuote relays GET /v1/quote with the given query parameters and
// returns the raw provider response body.
func (c *Client) GetLifiQuote(ctx context.Context, params map[string]string) ([]byte, error) {
	body, err := httpx.CallRaw(ctx, http.MethodGet, c.baseURL+"/lifi/quote", c.headers(), nil, params)
	if err != nil {
		return nil, fmt.Errorf("relay quote failed: %w", err)
	}
	return body, nil
}

// GetLifiRoute relays POST /v1/advanced/routes with the given payload and
// returns the raw provider response body.
func (c *Client) GetLifiRoute(ctx context.Context, payload any) ([]byte, error) {
	body, err := httpx.CallRaw(ctx, http.MethodPost, c.baseURL+"/lifi/routes", c.headers(), payload, nil)
	if err != nil {
		return nil, fmt.Errorf("relay routes failed: %w", err)
	}
	return body, nil
}
