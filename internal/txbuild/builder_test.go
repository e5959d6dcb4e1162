package txbuild

import (
	"context"
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

const (
	testToken     = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	testSpender   = "0x4444444444444444444444444444444444444444"
	testRouterTo  = "0x5555555555555555555555555555555555555555"
	testWallet    = "0x2222222222222222222222222222222222222222"
	testMultiSend = "0x40A2aCCbd92BCA938b02010E17A5b8929b49130D"
	testSolWallet = "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2"
)

// fakeAllowance returns a fixed allowance and records the lookups it serves.
type fakeAllowance struct {
	allowance *big.Int
	calls     int
}

func (f *fakeAllowance) Allowance(_ context.Context, _ chain.ID, _, _, _ string) (*big.Int, error) {
	f.calls++
	return f.allowance, nil
}

// fakeSource serves a canned step list.
type fakeSource struct {
	steps []swap.StepTx
}

func (f fakeSource) StepTransactions(_ context.Context, _ swap.Route) ([]swap.StepTx, error) {
	return f.steps, nil
}

// stubRoute satisfies swap.Route for builder tests.
type stubRoute struct{}

func (stubRoute) RouteData() swap.RouteData   { return swap.RouteData{ID: "stub"} }
func (stubRoute) Provider() swap.ProviderName { return swap.ProviderLifi }

func erc20Step() swap.StepTx {
	return swap.StepTx{
		FromChainID:      chain.Ethereum,
		ToChainID:        chain.Ethereum,
		FromTokenAddress: testToken,
		To:               testRouterTo,
		Value:            big.NewInt(0),
		Data:             "0xdeadbeef",
		ApprovalAddress:  testSpender,
		RequiredAmount:   big.NewInt(1000000),
	}
}

func eoaWallet() swap.Wallet {
	return swap.Wallet{Address: testWallet}
}

func TestBuild_ApproveBeforeSwap(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(0)}
	builder := NewBuilder(allowance, testMultiSend)

	txs, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{erc20Step()}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, swap.TransactionApprove, txs[0].Type)
	assert.Equal(t, testToken, txs[0].Data.To, "approve targets the token contract")
	assert.Equal(t, testSpender, txs[0].ApprovalAddress)

	assert.Equal(t, swap.TransactionSwap, txs[1].Type)
	assert.Equal(t, testRouterTo, txs[1].Data.To)
	assert.Equal(t, 1, allowance.calls)
}

func TestBuild_SkipsApproveWhenCovered(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(2000000)}
	builder := NewBuilder(allowance, testMultiSend)

	txs, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{erc20Step()}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, swap.TransactionSwap, txs[0].Type)
}

func TestBuild_ExactAllowanceNeedsNoApprove(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(1000000)}
	builder := NewBuilder(allowance, testMultiSend)

	txs, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{erc20Step()}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

func TestBuild_NativeSourceNeedsNoApprove(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(0)}
	builder := NewBuilder(allowance, testMultiSend)

	step := erc20Step()
	step.FromTokenAddress = ""
	step.Value = big.NewInt(500)

	txs, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{step}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 0, allowance.calls, "native assets never hit the allowance check")
}

func TestBuild_NoSpenderNeedsNoApprove(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(0)}
	builder := NewBuilder(allowance, testMultiSend)

	step := erc20Step()
	step.ApprovalAddress = ""

	txs, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{step}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 0, allowance.calls)
}

func TestBuild_InfiniteApproval(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(0)}
	builder := NewBuilder(allowance, testMultiSend)

	exact, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{erc20Step()}}, Options{})
	require.NoError(t, err)

	infinite, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{erc20Step()}}, Options{InfiniteApproval: true})
	require.NoError(t, err)

	require.Len(t, exact, 2)
	require.Len(t, infinite, 2)
	assert.NotEqual(t, exact[0].Data.Data, infinite[0].Data.Data,
		"infinite approval packs max uint256 instead of the step amount")
	// max uint256 is all f's in the packed amount word.
	assert.Contains(t, infinite[0].Data.Data, "ffffffffffffffffffffffffffffffff")
}

func TestBuild_BridgeClassification(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(2000000)}
	builder := NewBuilder(allowance, testMultiSend)

	step := erc20Step()
	step.ToChainID = chain.BSC
	step.BridgeID = "stargate"
	step.ExpectedRecipient = testWallet
	step.ExpectedToken = ""
	step.ExpectedAmount = "995000"

	txs, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{step}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, swap.TransactionBridge, tx.Type)
	require.NotNil(t, tx.BridgeMetadata)
	assert.Equal(t, "stargate", tx.BridgeMetadata.BridgeID)
	assert.Equal(t, chain.BSC, tx.BridgeMetadata.ChainID)
	assert.Equal(t, testWallet, tx.BridgeMetadata.ExpectedRecipientAddress)
	assert.Equal(t, "995000", tx.BridgeMetadata.ExpectedTokenAmount)
}

func TestBuild_BridgeRejectsBadRecipient(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(2000000)}
	builder := NewBuilder(allowance, testMultiSend)

	step := erc20Step()
	step.ToChainID = chain.Solana
	step.BridgeID = "mayan"
	step.ExpectedRecipient = "not-a-solana-address!"

	_, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{step}}, Options{})
	assert.ErrorIs(t, err, swap.ErrUnableToCreateTx)
}

func TestBuild_SolanaPayloadReencoded(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(0)}
	builder := NewBuilder(allowance, testMultiSend)

	raw := []byte{0x01, 0x02, 0x03, 0x04}
	step := swap.StepTx{
		FromChainID:    chain.Solana,
		ToChainID:      chain.Solana,
		Data:           base64.StdEncoding.EncodeToString(raw),
		RequiredAmount: big.NewInt(1),
	}

	txs, err := builder.Build(context.Background(), swap.Wallet{Address: testSolWallet}, stubRoute{},
		fakeSource{steps: []swap.StepTx{step}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, swap.TransactionSwap, tx.Type)
	assert.Empty(t, tx.Data.To, "solana payloads are self-describing")
	assert.Equal(t, base58.Encode(raw), tx.Data.Data)
	assert.Equal(t, 0, allowance.calls)
}

func TestBuild_EvmStepRequiresCallData(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(0)}
	builder := NewBuilder(allowance, testMultiSend)

	step := erc20Step()
	step.Data = ""
	step.ApprovalAddress = ""

	_, err := builder.Build(context.Background(), eoaWallet(), stubRoute{},
		fakeSource{steps: []swap.StepTx{step}}, Options{})
	assert.ErrorIs(t, err, swap.ErrUnableToCreateTx)
}

func TestBuild_SafeBatchesMultipleTxs(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(0)}
	builder := NewBuilder(allowance, testMultiSend)

	wallet := swap.Wallet{Address: testWallet, IsSafe: true}
	txs, err := builder.Build(context.Background(), wallet, stubRoute{},
		fakeSource{steps: []swap.StepTx{erc20Step()}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1, "approve plus swap collapse into one multisend call")

	tx := txs[0]
	assert.Equal(t, testMultiSend, tx.Data.To)
	assert.Equal(t, swap.TransactionSwap, tx.Type)
}

func TestBuild_SafeSingleTxNotBatched(t *testing.T) {
	allowance := &fakeAllowance{allowance: big.NewInt(2000000)}
	builder := NewBuilder(allowance, testMultiSend)

	wallet := swap.Wallet{Address: testWallet, IsSafe: true}
	txs, err := builder.Build(context.Background(), wallet, stubRoute{},
		fakeSource{steps: []swap.StepTx{erc20Step()}}, Options{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, testRouterTo, txs[0].Data.To, "a single transaction skips the multisend wrapper")
}

func TestBatchForSafe(t *testing.T) {
	approve := swap.Transaction{
		Type:    swap.TransactionApprove,
		ChainID: chain.Ethereum,
		Data:    swap.CallData{To: testToken, Value: big.NewInt(0), Data: "0x01"},
	}
	bridge := swap.Transaction{
		Type:    swap.TransactionBridge,
		ChainID: chain.Ethereum,
		Data:    swap.CallData{To: testRouterTo, Value: big.NewInt(5), Data: "0x0203"},
		BridgeMetadata: &swap.BridgeMetadata{
			BridgeID: "stargate",
			ChainID:  chain.BSC,
		},
	}

	batched, err := batchForSafe([]swap.Transaction{approve, bridge}, testMultiSend)
	require.NoError(t, err)

	assert.Equal(t, swap.TransactionBridge, batched.Type, "the batch inherits the bridge classification")
	require.NotNil(t, batched.BridgeMetadata)
	assert.Equal(t, "stargate", batched.BridgeMetadata.BridgeID)
	assert.Equal(t, big.NewInt(5), batched.Data.Value, "values are summed")
	assert.Equal(t, testMultiSend, batched.Data.To)
}

func TestBatchForSafe_Errors(t *testing.T) {
	evm := swap.Transaction{
		ChainID: chain.Ethereum,
		Data:    swap.CallData{To: testToken, Data: "0x01"},
	}

	_, err := batchForSafe([]swap.Transaction{evm}, testMultiSend)
	assert.Error(t, err, "a single transaction is not a batch")

	other := evm
	other.ChainID = chain.BSC
	_, err = batchForSafe([]swap.Transaction{evm, other}, testMultiSend)
	assert.Error(t, err, "batches never span chains")

	sol := swap.Transaction{ChainID: chain.Solana, Data: swap.CallData{Data: "abc"}}
	_, err = batchForSafe([]swap.Transaction{evm, sol}, testMultiSend)
	assert.Error(t, err, "non-EVM transactions cannot be multisent")

	_, err = batchForSafe([]swap.Transaction{evm, evm}, "")
	assert.Error(t, err, "multisend address must be configured")
}
