package swap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		expected string
		wantErr  bool
	}{
		{name: "whole amount", amount: "10", decimals: 6, expected: "10000000"},
		{name: "fractional amount", amount: "0.5", decimals: 18, expected: "500000000000000000"},
		{name: "exact precision", amount: "1.234567", decimals: 6, expected: "1234567"},
		{name: "excess precision truncates", amount: "1.2345678", decimals: 6, expected: "1234567"},
		{name: "zero decimals", amount: "42", decimals: 0, expected: "42"},
		{name: "zero", amount: "0", decimals: 18, expected: "0"},
		{name: "empty", amount: "", decimals: 6, wantErr: true},
		{name: "two dots", amount: "1.2.3", decimals: 6, wantErr: true},
		{name: "garbage", amount: "abc", decimals: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.amount, tt.decimals)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		expected string
	}{
		{name: "whole amount", amount: "10000000", decimals: 6, expected: "10"},
		{name: "fractional", amount: "500000000000000000", decimals: 18, expected: "0.5"},
		{name: "trailing zeros dropped", amount: "1230000", decimals: 6, expected: "1.23"},
		{name: "smaller than one unit", amount: "1", decimals: 6, expected: "0.000001"},
		{name: "negative", amount: "-1500000", decimals: 6, expected: "-1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := new(big.Int).SetString(tt.amount, 10)
			require.True(t, ok)
			assert.Equal(t, tt.expected, FormatUnits(amount, tt.decimals))
		})
	}

	assert.Equal(t, "0", FormatUnits(nil, 6))
}

func TestParseUnitsFormatUnitsRoundTrip(t *testing.T) {
	for _, amount := range []string{"1", "0.5", "123.456", "0.000001"} {
		parsed, err := ParseUnits(amount, 6)
		require.NoError(t, err)
		assert.Equal(t, amount, FormatUnits(parsed, 6))
	}
}

func TestParseBig(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
		wantErr  bool
	}{
		{name: "decimal", in: "1000", expected: "1000"},
		{name: "hex", in: "0x3e8", expected: "1000"},
		{name: "empty is zero", in: "", expected: "0"},
		{name: "bare 0x is zero", in: "0x", expected: "0"},
		{name: "garbage", in: "xyz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBig(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestDeductSlippage(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		bps      int64
		expected int64
	}{
		{name: "1% slippage", amount: 4000000000, bps: 100, expected: 3960000000},
		{name: "5% slippage", amount: 1000, bps: 500, expected: 950},
		{name: "fractional result floors", amount: 999, bps: 100, expected: 989},
		{name: "zero slippage", amount: 1000, bps: 0, expected: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeductSlippage(big.NewInt(tt.amount), tt.bps)
			assert.Equal(t, tt.expected, got.Int64())
		})
	}

	assert.Equal(t, int64(0), DeductSlippage(nil, 100).Int64())
}

func TestDeductSlippage_Monotonic(t *testing.T) {
	amount := big.NewInt(1_000_000_000)
	prev := DeductSlippage(amount, 0)
	for bps := int64(100); bps <= 1000; bps += 100 {
		cur := DeductSlippage(amount, bps)
		assert.True(t, cur.Cmp(prev) < 0, "floor must strictly decrease as slippage grows (bps=%d)", bps)
		assert.True(t, cur.Cmp(amount) < 0)
		prev = cur
	}
}

func TestAmountUSD(t *testing.T) {
	usdc := Token{Decimals: 6, PriceUSD: "1.00"}
	assert.Equal(t, "10", AmountUSD("10000000", usdc))

	eth := Token{Decimals: 18, PriceUSD: "2500"}
	assert.Equal(t, "1250", AmountUSD("500000000000000000", eth))

	assert.Equal(t, "", AmountUSD("10000000", Token{Decimals: 6}), "no price means no USD value")
	assert.Equal(t, "", AmountUSD("bad", usdc))
}
