package fourmeme

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

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
	return swap.ProviderFourMeme
}

type routeVariant struct {
	data swap.RouteData
	meta *TokenMeta
	// buy means native -> token; otherwise token -> native.
	buy bool
}

func (v routeVariant) RouteData() swap.RouteData   { return v.data }
func (v routeVariant) Provider() swap.ProviderName { return swap.ProviderFourMeme }

func (p *Provider) validate(input swap.AssetInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if input.FromToken.ChainID != chain.BSC || input.ToToken.ChainID != chain.BSC {
		return fmt.Errorf("%w: four.meme pools live on BSC only", swap.ErrInvalidInput)
	}
	if input.FromToken.IsNative() == input.ToToken.IsNative() {
		return fmt.Errorf("%w: four.meme trades a token against the native asset", swap.ErrInvalidInput)
	}
	return nil
}

func (p *Provider) Quote(ctx context.Context, input swap.AssetInput) (swap.Route, error) {
	if err := p.validate(input); err != nil {
		return nil, err
	}

	buy := input.FromToken.IsNative()
	memeToken := input.FromToken
	if buy {
		memeToken = input.ToToken
	}

	meta, err := p.client.GetTokenMeta(ctx, memeToken.Address)
	if err != nil {
		return nil, err
	}

	pool, err := newCurve(meta)
	if err != nil {
		return nil, fmt.Errorf("unusable pool for %s: %w", memeToken.Address, err)
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", swap.ErrInvalidInput, input.Amount)
	}

	var out, minOut decimal.Decimal
	if buy {
		out, minOut, err = pool.buy(amount, decimal.NewFromFloat(input.SlippageFraction()))
	} else {
		out, minOut, err = pool.sell(amount)
	}
	if err != nil {
		return nil, err
	}

	fromAmount, err := input.FromAmount()
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	outDecimals := input.ToToken.Decimals
	data := swap.RouteData{
		ID:          fmt.Sprintf("fourmeme-%s-%s-%s", direction(buy), memeToken.Address, fromAmount.String()),
		FromChainID: chain.BSC,
		FromAmount:  fromAmount.String(),
		FromToken:   input.FromToken,
		FromAddress: input.FromAddress,
		ToChainID:   chain.BSC,
		ToAmount:    toBaseUnits(out, outDecimals),
		ToAmountMin: toBaseUnits(minOut, outDecimals),
		ToToken:     input.ToToken,
		ToAddress:   input.ToAddress,
	}
	data.FromAmountUSD = swap.AmountUSD(data.FromAmount, input.FromToken)
	data.ToAmountUSD = swap.AmountUSD(data.ToAmount, input.ToToken)

	return routeVariant{
		data: data,
		meta: meta,
		buy:  buy,
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

// StepTransactions packs the TokenManager call locally; no provider
// endpoint is involved in transaction construction.
func (p *Provider) StepTransactions(_ context.Context, route swap.Route) ([]swap.StepTx, error) {
	v, ok := route.(routeVariant)
	if !ok {
		return nil, fmt.Errorf("route does not belong to the four.meme provider")
	}

	manager := p.client.cfg.TokenManager
	if manager == "" {
		return nil, fmt.Errorf("%w: token manager address not configured", swap.ErrUnableToCreateTx)
	}

	fromAmount, err := swap.ParseBig(v.data.FromAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse from amount: %w", err)
	}

	var (
		callData []byte
		value    *big.Int
		spender  string
	)
	token := common.HexToAddress(v.meta.Address)

	if v.buy {
		minAmount, er := swap.ParseBig(v.data.ToAmountMin)
		if er != nil {
			return nil, fmt.Errorf("failed to parse min amount: %w", er)
		}
		callData, err = packBuy(token, fromAmount, minAmount)
		value = fromAmount
	} else {
		callData, err = packSell(token, fromAmount)
		value = big.NewInt(0)
		spender = manager
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", swap.ErrUnableToCreateTx, err)
	}

	return []swap.StepTx{{
		FromChainID:      chain.BSC,
		ToChainID:        chain.BSC,
		FromTokenAddress: v.data.FromToken.Address,
		To:               manager,
		Value:            value,
		Data:             hexutil.Encode(callData),
		ApprovalAddress:  spender,
		RequiredAmount:   fromAmount,
	}}, nil
}

func direction(buy bool) string {
	if buy {
		return "buy"
	}
	return "sell"
}

// toBaseUnits converts a whole-token decimal amount to an integer string
// in the token's smallest unit, truncating excess precision.
func toBaseUnits(amount decimal.Decimal, decimals int) string {
	return amount.Shift(int32(decimals)).Floor().String()
}
