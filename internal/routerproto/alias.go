package routerproto

import (
	"strconv"
	"strings"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/chain"
)

// Router Protocol addresses chains by stringified network id and uses the
// 0xEeee... dummy address for native gas assets. Only EVM chains are
// routable through it.
const nativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

func toProviderChainID(c chain.ID) string {
	return strconv.FormatInt(int64(c), 10)
}

func fromProviderChainID(id string) (chain.ID, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, err
	}
	return chain.ID(parsed), nil
}

func toProviderAddress(address string) string {
	if chain.IsNativeAsset(address) {
		return nativeTokenAddress
	}
	return address
}

func fromProviderAddress(address string) string {
	if strings.EqualFold(address, nativeTokenAddress) {
		return ""
	}
	return address
}
