package fourmeme

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

// The platform fee is charged on the native leg of every trade: orders at
// or below the 0.001 floor cannot cover it, small orders pay the flat
// 0.001, larger orders pay 1/201 of the total (~0.497%).
var (
	feeFloor       = decimal.RequireFromString("0.001")
	flatFeeCeiling = decimal.RequireFromString("0.201")
	feeNumerator   = decimal.NewFromInt(200)
	feeDenominator = decimal.NewFromInt(201)

	one        = decimal.NewFromInt(1)
	tenK       = decimal.NewFromInt(10000)
	maxBuyZero = decimal.Zero
)

// curve is the constant-ratio pricing of one pool. Reserves are in
// whole-token units.
type curve struct {
	tokenReserve  decimal.Decimal
	nativeReserve decimal.Decimal
	maxBuy        decimal.Decimal
}

func newCurve(meta *TokenMeta) (curve, error) {
	tokenReserve, err := decimal.NewFromString(meta.TokenReserve)
	if err != nil {
		return curve{}, fmt.Errorf("invalid token reserve %q: %w", meta.TokenReserve, err)
	}
	nativeReserve, err := decimal.NewFromString(meta.NativeReserve)
	if err != nil {
		return curve{}, fmt.Errorf("invalid native reserve %q: %w", meta.NativeReserve, err)
	}
	if tokenReserve.Sign() <= 0 || nativeReserve.Sign() <= 0 {
		return curve{}, fmt.Errorf("pool has empty reserves")
	}

	maxBuy := maxBuyZero
	if meta.MaxBuy != "" {
		maxBuy, err = decimal.NewFromString(meta.MaxBuy)
		if err != nil {
			return curve{}, fmt.Errorf("invalid maxBuy %q: %w", meta.MaxBuy, err)
		}
	}

	return curve{
		tokenReserve:  tokenReserve,
		nativeReserve: nativeReserve,
		maxBuy:        maxBuy,
	}, nil
}

// deductFee applies the platform fee schedule to a native-unit total.
func deductFee(total decimal.Decimal) (decimal.Decimal, error) {
	if total.LessThanOrEqual(feeFloor) {
		return decimal.Zero, fmt.Errorf("%w: %s does not cover the %s fee",
			swap.ErrOrderTooSmall, total.String(), feeFloor.String())
	}
	if total.LessThanOrEqual(flatFeeCeiling) {
		return total.Sub(feeFloor), nil
	}
	return total.Mul(feeNumerator).Div(feeDenominator), nil
}

// buy converts a native input into token output. slippage is a fraction
// in [0, 1); the floor multiplier is rounded to four decimal places
// before being applied.
func (c curve) buy(amountNative decimal.Decimal, slippage decimal.Decimal) (out, minOut decimal.Decimal, err error) {
	actual, err := deductFee(amountNative)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if c.maxBuy.Sign() > 0 && actual.GreaterThan(c.maxBuy) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s exceeds pool cap %s",
			swap.ErrMaxBuyExceeded, actual.String(), c.maxBuy.String())
	}

	out = actual.Mul(c.tokenReserve).Div(c.nativeReserve)
	multiplier := one.Div(one.Add(slippage)).Mul(tenK).Round(0).Div(tenK)
	minOut = out.Mul(multiplier)
	return out, minOut, nil
}

// sell converts a token input into native output. The pool offers no
// slippage bound on sells, so the minimum is always zero.
func (c curve) sell(amountToken decimal.Decimal) (out, minOut decimal.Decimal, err error) {
	gross := amountToken.Mul(c.nativeReserve).Div(c.tokenReserve)
	net, err := deductFee(gross)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return net, decimal.Zero, nil
}
