package routerproto

import (
	"context"
	"fmt"
	"strconv"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

type Provider struct {
	client *Client
}

func NewProvider(client *Client) *Provider {
	return &Provider{
		client: client,
	}
}

func (p *Provider) Name() swap.ProviderName {
	return swap.ProviderRouter
}

type routeVariant struct {
	data  swap.RouteData
	quote *Quote
}

func (v routeVariant) RouteData() swap.RouteData   { return v.data }
func (v routeVariant) Provider() swap.ProviderName { return swap.ProviderRouter }

func (p *Provider) validate(input swap.AssetInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if !input.FromToken.ChainID.IsEvm() || !input.ToToken.ChainID.IsEvm() {
		return fmt.Errorf("%w: router protocol only routes between EVM chains", swap.ErrInvalidInput)
	}
	return nil
}

func (p *Provider) Quote(ctx context.Context, input swap.AssetInput) (swap.Route, error) {
	if err := p.validate(input); err != nil {
		return nil, err
	}

	fromAmount, err := input.FromAmount()
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	quote, err := p.client.getQuote(ctx, quoteRequest{
		FromTokenAddress:  toProviderAddress(input.FromToken.Address),
		ToTokenAddress:    toProviderAddress(input.ToToken.Address),
		Amount:            fromAmount.String(),
		FromChainID:       toProviderChainID(input.FromToken.ChainID),
		ToChainID:         toProviderChainID(input.ToToken.ChainID),
		SlippageTolerance: strconv.FormatFloat(input.Slippage, 'f', -1, 64),
	})
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, nil
	}

	data, err := p.normalize(quote, input)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize quote: %w", err)
	}

	return routeVariant{
		data:  data,
		quote: quote,
	}, nil
}

func (p *Provider) Routes(ctx context.Context, input swap.AssetInput) ([]swap.Route, error) {
	route, err := p.Quote(ctx, input)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, nil
	}
	return []swap.Route{route}, nil
}

// normalize maps the pathfinder quote into the canonical route shape. The
// pathfinder prices the route; the slippage floor is applied locally from
// the user's tolerance.
func (p *Provider) normalize(quote *Quote, input swap.AssetInput) (swap.RouteData, error) {
	fromChain, err := fromProviderChainID(quote.Source.ChainID)
	if err != nil {
		return swap.RouteData{}, fmt.Errorf("unexpected source chain id %q: %w", quote.Source.ChainID, err)
	}
	toChain, err := fromProviderChainID(quote.Destination.ChainID)
	if err != nil {
		return swap.RouteData{}, fmt.Errorf("unexpected destination chain id %q: %w", quote.Destination.ChainID, err)
	}

	toAmount, err := swap.ParseBig(quote.Destination.TokenAmount)
	if err != nil {
		return swap.RouteData{}, fmt.Errorf("failed to parse destination amount: %w", err)
	}
	toAmountMin := swap.DeductSlippage(toAmount, input.SlippageBps())

	fromToken := normalizeAsset(fromChain, quote.Source.Asset)
	toToken := normalizeAsset(toChain, quote.Destination.Asset)
	fromToken.PriceUSD = input.FromToken.PriceUSD
	toToken.PriceUSD = input.ToToken.PriceUSD

	id := fmt.Sprintf("router-%d-%s-%d-%s-%s",
		fromChain, fromToken.Address, toChain, toToken.Address, quote.Source.TokenAmount)

	return swap.RouteData{
		ID:            id,
		FromChainID:   fromChain,
		FromAmount:    quote.Source.TokenAmount,
		FromAmountUSD: swap.AmountUSD(quote.Source.TokenAmount, fromToken),
		FromToken:     fromToken,
		FromAddress:   input.FromAddress,
		ToChainID:     toChain,
		ToAmount:      toAmount.String(),
		ToAmountMin:   toAmountMin.String(),
		ToAmountUSD:   swap.AmountUSD(toAmount.String(), toToken),
		ToToken:       toToken,
		ToAddress:     input.ToAddress,
	}, nil
}

func normalizeAsset(c chain.ID, asset AssetInfo) swap.Token {
	return swap.Token{
		ChainID:  c,
		Address:  fromProviderAddress(asset.Address),
		Symbol:   asset.Symbol,
		Decimals: asset.Decimals,
		Name:     asset.Name,
	}
}

func (p *Provider) StepTransactions(ctx context.Context, route swap.Route) ([]swap.StepTx, error) {
	v, ok := route.(routeVariant)
	if !ok {
		return nil, fmt.Errorf("route does not belong to the router provider")
	}

	resp, err := p.client.getTransaction(ctx, v.quote, v.data.FromAddress, v.data.ToAddress)
	if err != nil {
		return nil, err
	}
	if resp.Txn.Data == "" {
		return nil, fmt.Errorf("%w: provider returned no call data", swap.ErrUnableToCreateTx)
	}

	value, err := swap.ParseBig(resp.Txn.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tx value: %w", err)
	}
	required, err := swap.ParseBig(v.data.FromAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse step amount: %w", err)
	}

	spender := resp.AllowanceTo
	if spender == "" {
		spender = v.quote.AllowanceTo
	}

	tx := swap.StepTx{
		FromChainID:      v.data.FromChainID,
		ToChainID:        v.data.ToChainID,
		FromTokenAddress: v.data.FromToken.Address,
		To:               resp.Txn.To,
		Value:            value,
		Data:             resp.Txn.Data,
		ApprovalAddress:  spender,
		RequiredAmount:   required,
	}

	if tx.ToChainID != tx.FromChainID {
		tx.BridgeID = "router"
		tx.ExpectedRecipient = v.data.ToAddress
		tx.ExpectedToken = v.data.ToToken.Address
		tx.ExpectedAmount = v.data.ToAmountMin
	}
	return []swap.StepTx{tx}, nil
}
