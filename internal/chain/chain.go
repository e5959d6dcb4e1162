package chain

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is the canonical internal chain id. EVM chains use their real
// network id; non-EVM chains use a small reserved id that never collides
// with an EVM network id, never a provider placeholder.
type ID int64

const (
	Ethereum  ID = 1
	Optimism  ID = 10
	BSC       ID = 56
	Polygon   ID = 137
	Base      ID = 8453
	Arbitrum  ID = 42161
	Avalanche ID = 43114
	Solana    ID = 501
)

var names = map[ID]string{
	Ethereum:  "Ethereum",
	Optimism:  "Optimism",
	BSC:       "BSC",
	Polygon:   "Polygon",
	Base:      "Base",
	Arbitrum:  "Arbitrum",
	Avalanche: "Avalanche",
	Solana:    "Solana",
}

var nativeSymbols = map[ID]string{
	Ethereum:  "ETH",
	Optimism:  "ETH",
	BSC:       "BNB",
	Polygon:   "POL",
	Base:      "ETH",
	Arbitrum:  "ETH",
	Avalanche: "AVAX",
	Solana:    "SOL",
}

var nativeDecimals = map[ID]int{
	Ethereum:  18,
	Optimism:  18,
	BSC:       18,
	Polygon:   18,
	Base:      18,
	Arbitrum:  18,
	Avalanche: 18,
	Solana:    9,
}

// Supported returns every chain the swap engine can route between.
func Supported() []ID {
	return []ID{
		Ethereum,
		Optimism,
		BSC,
		Polygon,
		Base,
		Arbitrum,
		Avalanche,
		Solana,
	}
}

// FromString parses a chain name (case-insensitive) or numeric id.
func FromString(s string) (ID, error) {
	for id, name := range names {
		if strings.EqualFold(name, s) {
			return id, nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		id := ID(n)
		if id.IsSupported() {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown chain: %q", s)
}

func (c ID) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Chain(%d)", int64(c))
}

func (c ID) IsSupported() bool {
	_, ok := names[c]
	return ok
}

// IsEvm reports whether the chain uses the EVM account and transaction model.
func (c ID) IsEvm() bool {
	switch c {
	case Ethereum, Optimism, BSC, Polygon, Base, Arbitrum, Avalanche:
		return true
	default:
		return false
	}
}

// HasAllowance reports whether the chain's asset model has an
// allowance/approval concept. Solana token accounts are delegated per
// transaction, so no approval step ever applies there.
func (c ID) HasAllowance() bool {
	return c.IsEvm()
}

func (c ID) NativeSymbol() (string, error) {
	sym, ok := nativeSymbols[c]
	if !ok {
		return "", fmt.Errorf("unknown chain: %s", c)
	}
	return sym, nil
}

func (c ID) NativeDecimals() (int, error) {
	d, ok := nativeDecimals[c]
	if !ok {
		return 0, fmt.Errorf("unknown chain: %s", c)
	}
	return d, nil
}

// IsNativeAsset reports whether the address denotes the chain's gas asset.
// The canonical representation of a native asset is the empty address.
func IsNativeAsset(address string) bool {
	return address == ""
}
