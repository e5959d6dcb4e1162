package lifi

import (
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

// NormalizeToken converts a provider token descriptor to the canonical
// vocabulary.
func NormalizeToken(t TokenInfo) swap.Token {
	c := fromProviderChainID(t.ChainID)
	return swap.Token{
		ChainID:  c,
		Address:  fromProviderAddress(c, t.Address),
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
		Name:     t.Name,
		LogoURI:  t.LogoURI,
		PriceUSD: t.PriceUSD,
	}
}

func denormalizeToken(t swap.Token) TokenInfo {
	return TokenInfo{
		ChainID:  toProviderChainID(t.ChainID),
		Address:  toProviderAddress(t.ChainID, t.Address),
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
		Name:     t.Name,
		LogoURI:  t.LogoURI,
		PriceUSD: t.PriceUSD,
	}
}

// normalizeAction rewrites an action's chain ids and token addresses to
// canonical form. The action ids are translated independently from the
// enclosing route; a route-level id and a step-level id are never assumed
// equal.
func normalizeAction(a Action) Action {
	fromChain := fromProviderChainID(a.FromChainID)
	toChain := fromProviderChainID(a.ToChainID)

	a.FromChainID = int64(fromChain)
	a.ToChainID = int64(toChain)
	a.FromToken = canonicalTokenInfo(NormalizeToken(a.FromToken))
	a.ToToken = canonicalTokenInfo(NormalizeToken(a.ToToken))
	return a
}

// canonicalTokenInfo stores a canonical token back into the wire shape so
// the rest of the raw payload stays structurally intact.
func canonicalTokenInfo(t swap.Token) TokenInfo {
	return TokenInfo{
		ChainID:  int64(t.ChainID),
		Address:  t.Address,
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
		Name:     t.Name,
		LogoURI:  t.LogoURI,
		PriceUSD: t.PriceUSD,
	}
}

func normalizeStep(s Step) Step {
	s.Action = normalizeAction(s.Action)
	return s
}

// denormalizeStep restores the provider's own chain ids and placeholder
// addresses before a step is sent back to the step-transaction endpoint.
func denormalizeStep(s Step) Step {
	fromChain := chain.ID(s.Action.FromChainID)
	toChain := chain.ID(s.Action.ToChainID)

	s.Action.FromChainID = toProviderChainID(fromChain)
	s.Action.ToChainID = toProviderChainID(toChain)
	s.Action.FromToken.ChainID = toProviderChainID(chain.ID(s.Action.FromToken.ChainID))
	s.Action.FromToken.Address = toProviderAddress(fromChain, s.Action.FromToken.Address)
	s.Action.ToToken.ChainID = toProviderChainID(chain.ID(s.Action.ToToken.ChainID))
	s.Action.ToToken.Address = toProviderAddress(toChain, s.Action.ToToken.Address)
	return s
}

// normalizeRoute rewrites a whole aggregator route, recursing into every
// step independently.
func normalizeRoute(r Route) Route {
	fromChain := fromProviderChainID(r.FromChainID)
	toChain := fromProviderChainID(r.ToChainID)

	r.FromChainID = int64(fromChain)
	r.ToChainID = int64(toChain)
	r.FromToken = canonicalTokenInfo(NormalizeToken(r.FromToken))
	r.ToToken = canonicalTokenInfo(NormalizeToken(r.ToToken))

	steps := make([]Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, normalizeStep(s))
	}
	r.Steps = steps
	return r
}

func routeData(r Route) swap.RouteData {
	return swap.RouteData{
		ID:            r.ID,
		FromChainID:   chain.ID(r.FromChainID),
		FromAmount:    r.FromAmount,
		FromAmountUSD: r.FromAmountUSD,
		FromToken:     tokenFromCanonicalized(r.FromToken),
		FromAddress:   r.FromAddress,
		ToChainID:     chain.ID(r.ToChainID),
		ToAmount:      r.ToAmount,
		ToAmountMin:   r.ToAmountMin,
		ToAmountUSD:   r.ToAmountUSD,
		ToToken:       tokenFromCanonicalized(r.ToToken),
		ToAddress:     r.ToAddress,
	}
}

func stepData(s Step) swap.RouteData {
	return swap.RouteData{
		ID:            s.ID,
		FromChainID:   chain.ID(s.Action.FromChainID),
		FromAmount:    s.Estimate.FromAmount,
		FromAmountUSD: s.Estimate.FromAmountUSD,
		FromToken:     tokenFromCanonicalized(s.Action.FromToken),
		FromAddress:   s.Action.FromAddress,
		ToChainID:     chain.ID(s.Action.ToChainID),
		ToAmount:      s.Estimate.ToAmount,
		ToAmountMin:   s.Estimate.ToAmountMin,
		ToAmountUSD:   s.Estimate.ToAmountUSD,
		ToToken:       tokenFromCanonicalized(s.Action.ToToken),
		ToAddress:     s.Action.ToAddress,
	}
}

// tokenFromCanonicalized reads a TokenInfo whose fields were already
// rewritten to canonical form.
func tokenFromCanonicalized(t TokenInfo) swap.Token {
	return swap.Token{
		ChainID:  chain.ID(t.ChainID),
		Address:  t.Address,
		Symbol:   t.Symbol,
		Decimals: t.Decimals,
		Name:     t.Name,
		LogoURI:  t.LogoURI,
		PriceUSD: t.PriceUSD,
	}
}
