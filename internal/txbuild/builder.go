// Package txbuild turns a finalized route into the ordered list of
// on-chain transactions to sign: an approve per step when the live
// allowance is short, then exactly one swap or bridge call.
package txbuild

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/evm"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

// AllowanceReader reads the current on-chain allowance. It is the only
// blocking I/O inside the builder and is awaited sequentially per step.
type AllowanceReader interface {
	Allowance(ctx context.Context, chainID chain.ID, token, owner, spender string) (*big.Int, error)
}

// StepSource resolves a route into raw per-step payloads; each provider
// adapter implements it.
type StepSource interface {
	StepTransactions(ctx context.Context, route swap.Route) ([]swap.StepTx, error)
}

type Options struct {
	// InfiniteApproval grants the max-uint256 sentinel instead of the
	// exact step amount.
	InfiniteApproval bool
}

type Builder struct {
	allowance AllowanceReader
	// multiSend is the MultiSendCallOnly contract used to collapse
	// multi-transaction output for Safe wallets.
	multiSend string
}

func NewBuilder(allowance AllowanceReader, multiSend string) *Builder {
	return &Builder{
		allowance: allowance,
		multiSend: multiSend,
	}
}

// Build runs to completion or fails; callers needing cancellation discard
// the result. It is never invoked speculatively.
func (b *Builder) Build(
	ctx context.Context,
	wallet swap.Wallet,
	route swap.Route,
	source StepSource,
	opts Options,
) ([]swap.Transaction, error) {
	steps, err := source.StepTransactions(ctx, route)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: route has no executable steps", swap.ErrUnableToCreateTx)
	}

	log := logrus.WithFields(logrus.Fields{
		"provider": route.Provider(),
		"routeId":  route.RouteData().ID,
		"wallet":   wallet.Address,
	})

	var txs []swap.Transaction
	for _, step := range steps {
		stepTxs, er := b.buildStep(ctx, wallet, step, opts)
		if er != nil {
			return nil, er
		}
		txs = append(txs, stepTxs...)
	}

	if wallet.IsSafe && len(txs) > 1 {
		batched, er := batchForSafe(txs, b.multiSend)
		if er != nil {
			return nil, er
		}
		log.WithField("batched", len(txs)).Info("collapsed transactions for safe wallet")
		return []swap.Transaction{batched}, nil
	}

	log.WithField("transactions", len(txs)).Info("built swap transactions")
	return txs, nil
}

func (b *Builder) buildStep(
	ctx context.Context,
	wallet swap.Wallet,
	step swap.StepTx,
	opts Options,
) ([]swap.Transaction, error) {
	var txs []swap.Transaction

	approve, err := b.approvalFor(ctx, wallet, step, opts)
	if err != nil {
		return nil, err
	}
	if approve != nil {
		txs = append(txs, *approve)
	}

	main, err := mainTransaction(step)
	if err != nil {
		return nil, err
	}
	txs = append(txs, main)
	return txs, nil
}

// approvalFor returns the approve transaction for a step, or nil when the
// chain has no allowance concept, the source asset is native, or the live
// allowance already covers the step amount.
func (b *Builder) approvalFor(
	ctx context.Context,
	wallet swap.Wallet,
	step swap.StepTx,
	opts Options,
) (*swap.Transaction, error) {
	if !step.FromChainID.HasAllowance() || chain.IsNativeAsset(step.FromTokenAddress) {
		return nil, nil
	}
	if step.ApprovalAddress == "" || step.RequiredAmount == nil || step.RequiredAmount.Sign() <= 0 {
		return nil, nil
	}

	current, err := b.allowance.Allowance(ctx, step.FromChainID, step.FromTokenAddress, wallet.Address, step.ApprovalAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to check allowance: %w", err)
	}
	if current.Cmp(step.RequiredAmount) >= 0 {
		return nil, nil
	}

	amount := step.RequiredAmount
	if opts.InfiniteApproval {
		amount = evm.MaxUint256
	}

	callData, err := evm.PackApprove(common.HexToAddress(step.ApprovalAddress), amount)
	if err != nil {
		return nil, err
	}

	return &swap.Transaction{
		Type:    swap.TransactionApprove,
		ChainID: step.FromChainID,
		Data: swap.CallData{
			To:    step.FromTokenAddress,
			Value: big.NewInt(0),
			Data:  hexutil.Encode(callData),
		},
		ApprovalAddress: step.ApprovalAddress,
	}, nil
}

func mainTransaction(step swap.StepTx) (swap.Transaction, error) {
	var call swap.CallData

	if step.FromChainID.IsEvm() {
		if step.Data == "" {
			return swap.Transaction{}, fmt.Errorf("%w: provider returned no call data", swap.ErrUnableToCreateTx)
		}
		if step.To == "" {
			return swap.Transaction{}, fmt.Errorf("%w: provider returned no destination address", swap.ErrUnableToCreateTx)
		}
		value := step.Value
		if value == nil {
			value = big.NewInt(0)
		}
		call = swap.CallData{
			To:    step.To,
			Value: value,
			Data:  step.Data,
		}
	} else {
		// Non-EVM payloads arrive base64-encoded and opaque; they are
		// re-encoded to the chain's native base58 wire encoding, with
		// to/value left empty since the payload is self-describing.
		raw, err := base64.StdEncoding.DecodeString(step.Data)
		if err != nil {
			return swap.Transaction{}, fmt.Errorf("%w: undecodable call data: %v", swap.ErrUnableToCreateTx, err)
		}
		if len(raw) == 0 {
			return swap.Transaction{}, fmt.Errorf("%w: provider returned no call data", swap.ErrUnableToCreateTx)
		}
		call = swap.CallData{
			Data: base58.Encode(raw),
		}
	}

	tx := swap.Transaction{
		Type:    swap.TransactionSwap,
		ChainID: step.FromChainID,
		Data:    call,
	}

	if step.ToChainID != step.FromChainID {
		if err := validateRecipient(step.ToChainID, step.ExpectedRecipient); err != nil {
			return swap.Transaction{}, err
		}
		tx.Type = swap.TransactionBridge
		tx.BridgeMetadata = &swap.BridgeMetadata{
			BridgeID:                 step.BridgeID,
			ChainID:                  step.ToChainID,
			ExpectedRecipientAddress: step.ExpectedRecipient,
			ExpectedTokenAddress:     step.ExpectedToken,
			ExpectedTokenAmount:      step.ExpectedAmount,
		}
	}
	return tx, nil
}

// validateRecipient rejects bridge metadata whose destination address is
// malformed for the destination chain before it reaches monitoring.
func validateRecipient(c chain.ID, address string) error {
	if address == "" {
		return fmt.Errorf("%w: bridge step has no recipient", swap.ErrUnableToCreateTx)
	}
	if c == chain.Solana {
		if _, err := solana.PublicKeyFromBase58(address); err != nil {
			return fmt.Errorf("%w: invalid solana recipient %q: %v", swap.ErrUnableToCreateTx, address, err)
		}
		return nil
	}
	if !common.IsHexAddress(address) {
		return fmt.Errorf("%w: invalid recipient %q", swap.ErrUnableToCreateTx, address)
	}
	return nil
}
