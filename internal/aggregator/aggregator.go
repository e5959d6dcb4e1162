package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/metrics"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

const defaultStaleness = 20 * time.Second

// Aggregator fans a swap query out to every registered provider, caches
// the per-provider results, and merges them in registration order.
type Aggregator struct {
	logger    *logrus.Logger
	providers []Provider
	routes    *Cache[[]swap.Route]
	quotes    *Cache[swap.Route]
	selector  *Selector
	staleness time.Duration
}

func New(logger *logrus.Logger, providers []Provider) *Aggregator {
	onHit := func(key string) {
		metrics.ObserveCacheHit(providerFromKey(key))
	}
	onMiss := func(key string) {
		metrics.ObserveCacheMiss(providerFromKey(key))
	}
	return &Aggregator{
		logger:    logger.WithField("pkg", "aggregator").Logger,
		providers: providers,
		routes:    NewCache[[]swap.Route]().WithStats(onHit, onMiss),
		quotes:    NewCache[swap.Route]().WithStats(onHit, onMiss),
		selector:  NewSelector(),
		staleness: defaultStaleness,
	}
}

// WithStaleness sets how long cached provider results stay fresh.
func (a *Aggregator) WithStaleness(d time.Duration) *Aggregator {
	a.staleness = d
	return a
}

func (a *Aggregator) Selector() *Selector {
	return a.selector
}

// Routes queries every provider concurrently and returns the merged
// route list in provider registration order. A provider error is logged
// and skipped as long as at least one provider succeeds; an empty input
// (zero amount) short-circuits to no routes.
func (a *Aggregator) Routes(ctx context.Context, input swap.AssetInput) ([]swap.Route, error) {
	if input.Amount == "" || input.Amount == "0" {
		return nil, nil
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(a.providers) == 0 {
		return nil, fmt.Errorf("no providers available")
	}

	type providerResult struct {
		routes []swap.Route
		err    error
	}
	results := make([]providerResult, len(a.providers))

	g, ctx := errgroup.WithContext(ctx)

	for _i, _provider := range a.providers {
		i, provider := _i, _provider
		g.Go(func() error {
			routes, err := a.providerRoutes(ctx, provider, input)

			results[i] = providerResult{
				routes: routes,
				err:    err,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("errgroup failed: %w", err)
	}

	var merged []swap.Route
	var lastErr error

	for i, result := range results {
		if result.err != nil {
			lastErr = result.err
			a.logger.WithError(result.err).
				WithField("provider", a.providers[i].Name()).
				Warn("provider routes failed")
			continue
		}
		merged = append(merged, result.routes...)
	}

	if len(merged) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all providers failed, last error: %w", lastErr)
	}
	return merged, nil
}

// BestRoute returns the selected route for input, honoring a pinned
// route id when it is still present in the latest result set.
func (a *Aggregator) BestRoute(ctx context.Context, input swap.AssetInput) (swap.Route, error) {
	routes, err := a.Routes(ctx, input)
	if err != nil {
		return nil, err
	}
	return a.selector.Select(routes), nil
}

// Quote returns a single provider's quote for input, cached within the
// staleness window. A nil route with a nil error means the provider has
// no route for the pair.
func (a *Aggregator) Quote(ctx context.Context, provider Provider, input swap.AssetInput) (swap.Route, error) {
	if input.Amount == "" || input.Amount == "0" {
		return nil, nil
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return a.quotes.Fetch(ctx, cacheKey(provider.Name(), input), a.staleness,
		func(ctx context.Context) (swap.Route, error) {
			start := time.Now()
			route, err := provider.Quote(ctx, input)
			metrics.ObserveProviderRequest(string(provider.Name()), "quote", time.Since(start), err)
			return route, err
		})
}

// StepTransactions resolves the raw provider payloads for each step of
// route by dispatching to the provider that produced it.
func (a *Aggregator) StepTransactions(ctx context.Context, route swap.Route) ([]swap.StepTx, error) {
	for _, provider := range a.providers {
		if provider.Name() == route.Provider() {
			return provider.StepTransactions(ctx, route)
		}
	}
	return nil, fmt.Errorf("unknown route provider: %s", route.Provider())
}

// Invalidate drops the cached results for input across all providers.
func (a *Aggregator) Invalidate(input swap.AssetInput) {
	for _, provider := range a.providers {
		key := cacheKey(provider.Name(), input)
		a.routes.Invalidate(key)
		a.quotes.Invalidate(key)
	}
}

func (a *Aggregator) providerRoutes(ctx context.Context, provider Provider, input swap.AssetInput) ([]swap.Route, error) {
	return a.routes.Fetch(ctx, cacheKey(provider.Name(), input), a.staleness,
		func(ctx context.Context) ([]swap.Route, error) {
			start := time.Now()
			routes, err := provider.Routes(ctx, input)
			metrics.ObserveProviderRequest(string(provider.Name()), "routes", time.Since(start), err)
			return routes, err
		})
}

func providerFromKey(key string) string {
	if i := strings.IndexByte(key, '|'); i >= 0 {
		return key[:i]
	}
	return key
}

func cacheKey(name swap.ProviderName, input swap.AssetInput) string {
	return strings.Join([]string{
		string(name),
		fmt.Sprintf("%d:%s", input.FromToken.ChainID, strings.ToLower(input.FromToken.Address)),
		fmt.Sprintf("%d:%s", input.ToToken.ChainID, strings.ToLower(input.ToToken.Address)),
		input.Amount,
		fmt.Sprintf("%g", input.Slippage),
		fmt.Sprintf("%d", input.FeeBps),
	}, "|")
}
