package swap

import (
	"math/big"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
)

type ProviderName string

const (
	ProviderLifi     ProviderName = "lifi"
	ProviderRouter   ProviderName = "router"
	ProviderFourMeme ProviderName = "fourmeme"
)

// Token is the normalized token descriptor. ChainID is always a canonical
// internal id and Address is always canonical (empty for a native asset),
// never a provider placeholder.
type Token struct {
	ChainID  chain.ID `json:"chainId"`
	Address  string   `json:"address"`
	Symbol   string   `json:"symbol"`
	Decimals int      `json:"decimals"`
	Name     string   `json:"name"`
	LogoURI  string   `json:"logoURI,omitempty"`
	PriceUSD string   `json:"priceUSD,omitempty"`
}

// IsNative reports whether the token is the chain's gas asset.
func (t Token) IsNative() bool {
	return chain.IsNativeAsset(t.Address)
}

// RouteData is the provider-independent view of a priced route. All
// amounts are integer strings in the token's smallest unit.
type RouteData struct {
	ID            string   `json:"id"`
	FromChainID   chain.ID `json:"fromChainId"`
	FromAmount    string   `json:"fromAmount"`
	FromAmountUSD string   `json:"fromAmountUSD"`
	FromToken     Token    `json:"fromToken"`
	FromAddress   string   `json:"fromAddress"`
	ToChainID     chain.ID `json:"toChainId"`
	ToAmount      string   `json:"toAmount"`
	ToAmountMin   string   `json:"toAmountMin"`
	ToAmountUSD   string   `json:"toAmountUSD"`
	ToToken       Token    `json:"toToken"`
	ToAddress     string   `json:"toAddress"`
}

// Route is one provider-priced path. Each provider package contributes its
// own variant carrying the raw payload needed later for transaction
// building; callers only rely on the normalized data.
type Route interface {
	RouteData() RouteData
	Provider() ProviderName
}

// StepTx is the raw unsigned payload a provider returns for one step of a
// route, before the transaction builder turns it into signable
// transactions. Data is 0x-hex for EVM chains and base64 for Solana.
type StepTx struct {
	FromChainID chain.ID
	ToChainID   chain.ID
	// FromTokenAddress is the canonical source token of this step, used
	// for the allowance check. Empty for a native asset.
	FromTokenAddress string
	To               string
	Value            *big.Int
	Data             string

	// ApprovalAddress is the spender contract that must be allowed to
	// move RequiredAmount of the source token. Empty when the provider
	// needs no approval (native asset or non-allowance chain).
	ApprovalAddress string
	RequiredAmount  *big.Int

	// Bridge delivery expectations, set when ToChainID != FromChainID.
	BridgeID          string
	ExpectedRecipient string
	ExpectedToken     string
	ExpectedAmount    string
}

type TransactionType string

const (
	TransactionApprove TransactionType = "approve"
	TransactionSwap    TransactionType = "swap"
	TransactionBridge  TransactionType = "bridge"
)

// CallData is one raw on-chain call. For Solana, To and Value are empty
// and Data is the base58-encoded self-describing payload.
type CallData struct {
	To    string   `json:"to"`
	Value *big.Int `json:"value"`
	Data  string   `json:"data"`
}

// BridgeMetadata describes the expected delivery of a bridge transaction
// so downstream monitoring can detect partial, failed or refunded
// outcomes.
type BridgeMetadata struct {
	BridgeID                 string   `json:"bridgeId"`
	ChainID                  chain.ID `json:"chainId"`
	ExpectedRecipientAddress string   `json:"expectedRecipientAddress"`
	ExpectedTokenAddress     string   `json:"expectedTokenAddress"`
	ExpectedTokenAmount      string   `json:"expectedTokenAmount"`
}

// Transaction is one on-chain call ready for signing.
type Transaction struct {
	Type            TransactionType `json:"type"`
	ChainID         chain.ID        `json:"chainId"`
	Data            CallData        `json:"data"`
	ApprovalAddress string          `json:"approvalAddress,omitempty"`
	BridgeMetadata  *BridgeMetadata `json:"bridgeMetadata,omitempty"`
}

// Wallet identifies the signing account. IsSafe marks a multi-signature
// contract wallet whose transactions must be batched through multi-send.
type Wallet struct {
	Address string
	IsSafe  bool
}
