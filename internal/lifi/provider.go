package lifi

import (
	"context"
	"fmt"
	"math/big"

	"github.com/sirupsen/logrus"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

// Provider adapts the LI.FI aggregator to the shared provider contract.
type Provider struct {
	client *Client
}

func NewProvider(client *Client) *Provider {
	return &Provider{
		client: client,
	}
}

func (p *Provider) Name() swap.ProviderName {
	return swap.ProviderLifi
}

// routeVariant is an advanced-routes result; quoteVariant a single quote
// step. Both retain the normalized raw payload for transaction building.
type routeVariant struct {
	data  swap.RouteData
	route Route
}

func (v routeVariant) RouteData() swap.RouteData   { return v.data }
func (v routeVariant) Provider() swap.ProviderName { return swap.ProviderLifi }

type quoteVariant struct {
	data swap.RouteData
	step Step
}

func (v quoteVariant) RouteData() swap.RouteData   { return v.data }
func (v quoteVariant) Provider() swap.ProviderName { return swap.ProviderLifi }

func (p *Provider) Routes(ctx context.Context, input swap.AssetInput) ([]swap.Route, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	fromAmount, err := input.FromAmount()
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	routes, err := p.client.getRoutes(ctx, routesRequest{
		FromChainID:      toProviderChainID(input.FromToken.ChainID),
		ToChainID:        toProviderChainID(input.ToToken.ChainID),
		FromTokenAddress: toProviderAddress(input.FromToken.ChainID, input.FromToken.Address),
		ToTokenAddress:   toProviderAddress(input.ToToken.ChainID, input.ToToken.Address),
		FromAmount:       fromAmount.String(),
		FromAddress:      input.FromAddress,
		ToAddress:        input.ToAddress,
		Options: routesOptions{
			Slippage:         input.SlippageFraction(),
			Fee:              input.FeeFraction(),
			Integrator:       p.client.cfg.Integrator,
			Order:            p.client.cfg.Order,
			AllowSwitchChain: false,
		},
	})
	if err != nil {
		return nil, err
	}

	result := make([]swap.Route, 0, len(routes))
	for _, r := range routes {
		// Multi-step aggregator routes are not executable by the
		// wallet's single-step pipeline and are dropped here.
		if len(r.Steps) != 1 {
			logrus.WithFields(logrus.Fields{
				"provider": "lifi",
				"routeId":  r.ID,
				"steps":    len(r.Steps),
			}).Debug("skipping multi-step route")
			continue
		}
		normalized := normalizeRoute(r)
		result = append(result, routeVariant{
			data:  routeData(normalized),
			route: normalized,
		})
	}
	return result, nil
}

func (p *Provider) Quote(ctx context.Context, input swap.AssetInput) (swap.Route, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	fromAmount, err := input.FromAmount()
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}

	step, err := p.client.getQuote(ctx, quoteRequest{
		FromChain:   toProviderChainID(input.FromToken.ChainID),
		ToChain:     toProviderChainID(input.ToToken.ChainID),
		FromToken:   toProviderAddress(input.FromToken.ChainID, input.FromToken.Address),
		ToToken:     toProviderAddress(input.ToToken.ChainID, input.ToToken.Address),
		FromAmount:  fromAmount.String(),
		FromAddress: input.FromAddress,
		ToAddress:   input.ToAddress,
		Slippage:    input.SlippageFraction(),
		Fee:         input.FeeFraction(),
	})
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, nil
	}

	normalized := normalizeStep(*step)
	return quoteVariant{
		data: stepData(normalized),
		step: normalized,
	}, nil
}

func (p *Provider) StepTransactions(ctx context.Context, route swap.Route) ([]swap.StepTx, error) {
	switch v := route.(type) {
	case routeVariant:
		txs := make([]swap.StepTx, 0, len(v.route.Steps))
		for _, step := range v.route.Steps {
			tx, err := p.stepTx(ctx, step)
			if err != nil {
				return nil, err
			}
			txs = append(txs, tx)
		}
		return txs, nil
	case quoteVariant:
		tx, err := p.stepTx(ctx, v.step)
		if err != nil {
			return nil, err
		}
		return []swap.StepTx{tx}, nil
	default:
		return nil, fmt.Errorf("route does not belong to the lifi provider")
	}
}

// stepTx resolves the executable payload for one normalized step, fetching
// it from the step-transaction endpoint when the step does not already
// carry one.
func (p *Provider) stepTx(ctx context.Context, step Step) (swap.StepTx, error) {
	tr := step.TransactionRequest
	if tr == nil || tr.Data == "" {
		resolved, err := p.client.getStepTransaction(ctx, denormalizeStep(step))
		if err != nil {
			return swap.StepTx{}, err
		}
		if resolved.TransactionRequest == nil {
			return swap.StepTx{}, fmt.Errorf("%w: provider returned no call data", swap.ErrUnableToCreateTx)
		}
		tr = resolved.TransactionRequest
	}

	value, err := swap.ParseBig(tr.Value)
	if err != nil {
		return swap.StepTx{}, fmt.Errorf("failed to parse tx value: %w", err)
	}

	required, ok := new(big.Int).SetString(step.Estimate.FromAmount, 10)
	if !ok {
		return swap.StepTx{}, fmt.Errorf("failed to parse step amount: %s", step.Estimate.FromAmount)
	}

	tx := swap.StepTx{
		FromChainID:      chain.ID(step.Action.FromChainID),
		ToChainID:        chain.ID(step.Action.ToChainID),
		FromTokenAddress: step.Action.FromToken.Address,
		To:               tr.To,
		Value:            value,
		Data:             tr.Data,
		ApprovalAddress:  step.Estimate.ApprovalAddress,
		RequiredAmount:   required,
	}

	if tx.ToChainID != tx.FromChainID {
		tx.BridgeID = step.Tool
		tx.ExpectedRecipient = step.Action.ToAddress
		tx.ExpectedToken = step.Action.ToToken.Address
		tx.ExpectedAmount = step.Estimate.ToAmountMin
	}
	return tx, nil
}
