package aggregator

import (
	"context"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

// Provider is the shared contract every liquidity/bridge integration
// implements. Quote returns (nil, nil) when the provider has no route,
// which is distinct from a transport error.
type Provider interface {
	Name() swap.ProviderName
	Routes(ctx context.Context, input swap.AssetInput) ([]swap.Route, error)
	Quote(ctx context.Context, input swap.AssetInput) (swap.Route, error)
	StepTransactions(ctx context.Context, route swap.Route) ([]swap.StepTx, error)
}
