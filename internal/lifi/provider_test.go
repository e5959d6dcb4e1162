package lifi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/relay"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

const (
	testUSDC      = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	testSender    = "0x2222222222222222222222222222222222222222"
	testSolWallet = "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"
)

func crossChainInput() swap.AssetInput {
	return swap.AssetInput{
		FromToken:   swap.Token{ChainID: chain.Ethereum, Address: testUSDC, Symbol: "USDC", Decimals: 6},
		ToToken:     swap.Token{ChainID: chain.Solana, Symbol: "SOL", Decimals: 9},
		FromAddress: testSender,
		ToAddress:   testSolWallet,
		Amount:      "100",
		Slippage:    1,
	}
}

// wireRoute is a provider-form route: provider chain ids, placeholder
// addresses, one step.
func wireRoute(id string, steps int) Route {
	action := Action{
		FromChainID: int64(chain.Ethereum),
		FromAmount:  "100000000",
		FromToken:   TokenInfo{ChainID: int64(chain.Ethereum), Address: testUSDC, Symbol: "USDC", Decimals: 6},
		FromAddress: testSender,
		ToChainID:   SolanaChainID,
		ToToken:     TokenInfo{ChainID: SolanaChainID, Address: solanaNativeAddress, Symbol: "SOL", Decimals: 9},
		ToAddress:   testSolWallet,
	}
	route := Route{
		ID:          id,
		FromChainID: int64(chain.Ethereum),
		FromAmount:  "100000000",
		FromToken:   action.FromToken,
		FromAddress: testSender,
		ToChainID:   SolanaChainID,
		ToAmount:    "450000000",
		ToAmountMin: "445500000",
		ToToken:     action.ToToken,
		ToAddress:   testSolWallet,
	}
	for i := 0; i < steps; i++ {
		route.Steps = append(route.Steps, Step{
			ID:     id + "-step",
			Type:   "lifi",
			Tool:   "mayan",
			Action: action,
			Estimate: Estimate{
				Tool:            "mayan",
				FromAmount:      "100000000",
				ToAmount:        "450000000",
				ToAmountMin:     "445500000",
				ApprovalAddress: "0x4444444444444444444444444444444444444444",
			},
		})
	}
	return route
}

func TestRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/advanced/routes" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		var req routesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, SolanaChainID, req.ToChainID, "request carries the provider's Solana id")
		assert.Equal(t, solanaNativeAddress, req.ToTokenAddress)
		assert.InDelta(t, 0.01, req.Options.Slippage, 1e-9)
		assert.False(t, req.Options.AllowSwitchChain)

		_ = json.NewEncoder(w).Encode(routesResponse{Routes: []Route{
			wireRoute("route-1", 1),
			wireRoute("route-2", 2),
		}})
	}))
	defer server.Close()

	provider := NewProvider(NewClient(Config{BaseURL: server.URL}, nil))
	routes, err := provider.Routes(context.Background(), crossChainInput())
	require.NoError(t, err)
	require.Len(t, routes, 1, "multi-step routes are dropped")

	data := routes[0].RouteData()
	assert.Equal(t, "route-1", data.ID)
	assert.Equal(t, swap.ProviderLifi, routes[0].Provider())
	assert.Equal(t, chain.Solana, data.ToChainID, "synthetic Solana id maps to the canonical one")
	assert.Empty(t, data.ToToken.Address, "Solana native placeholder maps to the empty address")
	assert.Equal(t, testUSDC, data.FromToken.Address)
	assert.Equal(t, "445500000", data.ToAmountMin)
}

func TestQuote_NoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	provider := NewProvider(NewClient(Config{BaseURL: server.URL}, nil))
	route, err := provider.Quote(context.Background(), crossChainInput())
	assert.NoError(t, err)
	assert.Nil(t, route, "404 means no route, not an error")
}

func TestQuote_RateLimitedWithoutRelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewProvider(NewClient(Config{BaseURL: server.URL}, nil))
	_, err := provider.Quote(context.Background(), crossChainInput())
	assert.Error(t, err, "without a relay a 429 surfaces as an error")
}

func TestQuote_RelayFallback(t *testing.T) {
	quoted := wireRoute("quote-1", 1).Steps[0]

	relayServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lifi/quote" {
			t.Errorf("unexpected relay path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(quoted)
	}))
	defer relayServer.Close()

	var direct int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		direct++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	relayClient := relay.NewClient(relayServer.URL, "test-token")
	provider := NewProvider(NewClient(Config{BaseURL: server.URL}, relayClient))

	route, err := provider.Quote(context.Background(), crossChainInput())
	require.NoError(t, err)
	require.NotNil(t, route)
	assert.Equal(t, 1, direct, "the direct endpoint is tried exactly once")
	assert.Equal(t, "quote-1-step", route.RouteData().ID)
}

func TestStepTransactions_FetchesPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/advanced/routes":
			_ = json.NewEncoder(w).Encode(routesResponse{Routes: []Route{wireRoute("route-1", 1)}})
		case "/v1/advanced/stepTransaction":
			var step Step
			require.NoError(t, json.NewDecoder(r.Body).Decode(&step))
			// The step must arrive back in provider form.
			assert.Equal(t, SolanaChainID, step.Action.ToChainID)
			assert.Equal(t, solanaNativeAddress, step.Action.ToToken.Address)

			step.TransactionRequest = &TransactionRequest{
				To:    "0x5555555555555555555555555555555555555555",
				Value: "0",
				Data:  "0xdeadbeef",
			}
			_ = json.NewEncoder(w).Encode(step)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	provider := NewProvider(NewClient(Config{BaseURL: server.URL}, nil))
	routes, err := provider.Routes(context.Background(), crossChainInput())
	require.NoError(t, err)
	require.Len(t, routes, 1)

	steps, err := provider.StepTransactions(context.Background(), routes[0])
	require.NoError(t, err)
	require.Len(t, steps, 1)

	step := steps[0]
	assert.Equal(t, chain.Ethereum, step.FromChainID)
	assert.Equal(t, chain.Solana, step.ToChainID)
	assert.Equal(t, testUSDC, step.FromTokenAddress)
	assert.Equal(t, "0xdeadbeef", step.Data)
	assert.Equal(t, "0x4444444444444444444444444444444444444444", step.ApprovalAddress)
	assert.Equal(t, "100000000", step.RequiredAmount.String())

	assert.Equal(t, "mayan", step.BridgeID)
	assert.Equal(t, testSolWallet, step.ExpectedRecipient)
	assert.Empty(t, step.ExpectedToken)
	assert.Equal(t, "445500000", step.ExpectedAmount)
}

func TestGetCanonicalTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tokens" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.URL.Query().Get("chains"), "1151111081099710")

		_ = json.NewEncoder(w).Encode(tokensResponse{Tokens: map[string][]TokenInfo{
			"1151111081099710": {
				{ChainID: SolanaChainID, Address: solanaNativeAddress, Symbol: "SOL", Decimals: 9},
			},
		}})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)
	tokens, err := client.GetCanonicalTokens(context.Background(), []int64{int64(chain.Solana)})
	require.NoError(t, err)

	list, ok := tokens[int64(chain.Solana)]
	require.True(t, ok, "results are keyed by canonical chain id")
	require.Len(t, list, 1)
	assert.Equal(t, int64(chain.Solana), list[0].ChainID)
	assert.Empty(t, list[0].Address)
}
