// Package special decides whether a MAC address is "special".
//
// Two definitions are supported and kept apart:
//
//   - prefix membership: the first three octets are a listed prefix
//     ([IsSpecialMAC], [Set.HasPrefix]);
//   - address membership: the whole address is listed
//     ([IsSpecialAddress], [Set.HasAddress]).
//
// All predicates expect canonical input (see package mac). Anything else,
// including lowercase hex, is not special.
package special

import "slices"

var (
	defaultPrefixes = []string{
		"00:1A:2B",
		"00:1A:2C",
	}
	defaultAddresses = []string{
		"20:3A:07:00:00:02",
	}
)

var defaultSet = mustSet(defaultPrefixes, defaultAddresses)

// DefaultPrefixes returns a copy of the built-in special prefixes.
func DefaultPrefixes() []string {
	return slices.Clone(defaultPrefixes)
}

// DefaultAddresses returns a copy of the built-in special addresses.
func DefaultAddresses() []string {
	return slices.Clone(defaultAddresses)
}

// IsSpecialMAC reports whether addr starts with one of the default prefixes.
func IsSpecialMAC(addr string) bool {
	return defaultSet.HasPrefix(addr)
}

// IsSpecialAddress reports whether addr is one of the default addresses.
func IsSpecialAddress(addr string) bool {
	return defaultSet.HasAddress(addr)
}

// Default returns the Set built from the default prefixes and addresses.
func Default() *Set {
	return defaultSet
}

func mustSet(prefixes, addresses []string) *Set {
	s, err := NewSet(prefixes, addresses)
	if err != nil {
		panic(err)
	}
	return s
}
