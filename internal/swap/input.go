package swap

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// AssetInput is the user-specified swap intent. Amount is a decimal string
// in the source token's units. Slippage is the UI-facing percent
// (1 = 1%), Fee the platform fee in basis points; both are converted to
// fractions before reaching a provider adapter.
type AssetInput struct {
	FromToken   Token
	ToToken     Token
	FromAddress string
	ToAddress   string
	Amount      string
	Slippage    float64
	FeeBps      int
}

// Validate reports whether the input describes an executable swap. It runs
// synchronously before any network call.
func (in AssetInput) Validate() error {
	amt, err := in.FromAmount()
	if err != nil || amt.Sign() <= 0 {
		return fmt.Errorf("%w: amount %q is not a positive amount", ErrInvalidInput, in.Amount)
	}
	if in.ToAddress == "" {
		return fmt.Errorf("%w: destination account not set", ErrInvalidInput)
	}
	if !in.FromToken.ChainID.IsSupported() || !in.ToToken.ChainID.IsSupported() {
		return fmt.Errorf("%w: unsupported chain", ErrInvalidInput)
	}
	if in.FromToken.ChainID == in.ToToken.ChainID &&
		strings.EqualFold(in.FromToken.Address, in.ToToken.Address) {
		return fmt.Errorf("%w: source and destination asset are the same", ErrInvalidInput)
	}
	if in.Slippage < 0 || in.Slippage >= 100 {
		return fmt.Errorf("%w: slippage %v%% out of range", ErrInvalidInput, in.Slippage)
	}
	if in.FeeBps < 0 || in.FeeBps >= 10000 {
		return fmt.Errorf("%w: fee %d bps out of range", ErrInvalidInput, in.FeeBps)
	}
	return nil
}

// FromAmount returns the input amount in the source token's smallest unit.
func (in AssetInput) FromAmount() (*big.Int, error) {
	return ParseUnits(in.Amount, in.FromToken.Decimals)
}

// SlippageFraction converts the UI percent to a fraction in [0, 1).
func (in AssetInput) SlippageFraction() float64 {
	return in.Slippage / 100
}

// SlippageBps returns the slippage tolerance in basis points.
func (in AssetInput) SlippageBps() int64 {
	return int64(in.Slippage * 100)
}

// FeeFraction converts the platform fee from basis points to a fraction
// in [0, 1).
func (in AssetInput) FeeFraction() float64 {
	return float64(in.FeeBps) / 10000
}

// IsCrossChain reports whether the intent bridges between chains.
func (in AssetInput) IsCrossChain() bool {
	return in.FromToken.ChainID != in.ToToken.ChainID
}

// AmountUSD values a smallest-unit amount against the token's USD price.
// Returns "" when no price is known.
func AmountUSD(amount string, token Token) string {
	if token.PriceUSD == "" {
		return ""
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return ""
	}
	price, err := decimal.NewFromString(token.PriceUSD)
	if err != nil {
		return ""
	}
	scale := decimal.New(1, int32(token.Decimals))
	return amt.Div(scale).Mul(price).Round(2).String()
}
