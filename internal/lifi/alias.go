package lifi

import (
	"strings"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
)

// LI.FI addresses EVM chains by their real network id but gives Solana a
// synthetic numeric id, and it represents native assets with per-VM
// placeholder addresses. Both mappings are exact inverses of each other so
// a canonical -> provider -> canonical round trip is the identity.
const (
	SolanaChainID int64 = 1151111081099710

	evmNativeAddress    = "0x0000000000000000000000000000000000000000"
	solanaNativeAddress = "11111111111111111111111111111111"
)

func toProviderChainID(c chain.ID) int64 {
	if c == chain.Solana {
		return SolanaChainID
	}
	return int64(c)
}

func fromProviderChainID(id int64) chain.ID {
	if id == SolanaChainID {
		return chain.Solana
	}
	return chain.ID(id)
}

func nativeAddress(c chain.ID) string {
	if c == chain.Solana {
		return solanaNativeAddress
	}
	return evmNativeAddress
}

func toProviderAddress(c chain.ID, address string) string {
	if chain.IsNativeAsset(address) {
		return nativeAddress(c)
	}
	return address
}

func fromProviderAddress(c chain.ID, address string) string {
	if strings.EqualFold(address, nativeAddress(c)) {
		return ""
	}
	return address
}
