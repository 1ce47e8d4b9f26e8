// Package auth holds the fixed admin allow-list. Requests identify themselves
// by wallet address; there is no signed session.
package auth

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// adminAddresses is compared against lower-cased, 0x-prefixed addresses.
var adminAddresses = []string{
	"0x1b9f436efe00db47fabec43394ed397baa68c28d",
	"0x6e6996997ba6da60dd3320b010c122577cd5fe28",
	"0xc7a4249b7bfcb70cc9eb3d2cec2be8b306f59dd1",
	"0x13f670991d138758c9fb8aecc9852d0bfe2dfaed",
}

// IsAdmin reports whether address is on the allow-list, ignoring case.
func IsAdmin(address string) bool {
	addr := NormalizeAddress(address)
	if addr == "" {
		return false
	}
	for _, admin := range adminAddresses {
		if admin == addr {
			return true
		}
	}
	return false
}

// NormalizeAddress lower-cases an address. Hex wallet addresses also get a
// 0x prefix; anything else is only trimmed and lower-cased.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return strings.ToLower(address)
}

// SameAddress compares two addresses after normalisation. Empty never matches.
func SameAddress(a, b string) bool {
	na, nb := NormalizeAddress(a), NormalizeAddress(b)
	return na != "" && na == nb
}
