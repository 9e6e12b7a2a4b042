package special

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jaco/specialmac/internal/mac"
)

// ErrUnknownMode is returned by ParseMode for anything but prefix, address or any.
var ErrUnknownMode = errors.New("unknown match mode")

// Mode selects which rule set a Match consults.
type Mode int

const (
	ModePrefix  Mode = iota // first three octets against the prefix set
	ModeAddress             // whole address against the address set
	ModeAny                 // either of the above
)

func (m Mode) String() string {
	switch m {
	case ModePrefix:
		return "prefix"
	case ModeAddress:
		return "address"
	case ModeAny:
		return "any"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "prefix", "address" or "any" (case-insensitive).
// The empty string is ModePrefix.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "prefix":
		return ModePrefix, nil
	case "address":
		return ModeAddress, nil
	case "any":
		return ModeAny, nil
	default:
		return ModePrefix, fmt.Errorf("%w %q: must be prefix, address or any", ErrUnknownMode, s)
	}
}

// Reason explains the outcome of a Match.
type Reason string

const (
	ReasonPrefix    Reason = "prefix"
	ReasonAddress   Reason = "address"
	ReasonNone      Reason = "none"
	ReasonMalformed Reason = "malformed"
)

// Match is the result of classifying one address.
type Match struct {
	Special bool
	Reason  Reason
	Rule    string // prefix or address that matched, "" otherwise
}

// Set is an immutable pair of special prefixes and special addresses.
// A Set is safe for concurrent use.
type Set struct {
	prefixes  map[string]struct{}
	addresses map[string]struct{}
}

// NewSet builds a Set. Entries may be written in any notation package mac
// accepts; an entry that does not parse is reported with its position.
func NewSet(prefixes, addresses []string) (*Set, error) {
	s := &Set{
		prefixes:  make(map[string]struct{}, len(prefixes)),
		addresses: make(map[string]struct{}, len(addresses)),
	}
	for i, p := range prefixes {
		norm, err := mac.NormalizePrefix(p)
		if err != nil {
			return nil, fmt.Errorf("prefix #%d %q: %w", i+1, p, err)
		}
		s.prefixes[norm] = struct{}{}
	}
	for i, a := range addresses {
		norm, err := mac.Normalize(a)
		if err != nil {
			return nil, fmt.Errorf("address #%d %q: %w", i+1, a, err)
		}
		s.addresses[norm] = struct{}{}
	}
	return s, nil
}

// HasPrefix reports whether the canonical address addr starts with a
// special prefix.
func (s *Set) HasPrefix(addr string) bool {
	p := mac.Prefix(addr)
	if p == "" {
		return false
	}
	_, ok := s.prefixes[p]
	return ok
}

// HasAddress reports whether the canonical address addr is a special address.
func (s *Set) HasAddress(addr string) bool {
	if !mac.IsCanonical(addr) {
		return false
	}
	_, ok := s.addresses[addr]
	return ok
}

// Match classifies addr under mode. In ModeAny an exact address match wins
// over a prefix match.
func (s *Set) Match(addr string, mode Mode) Match {
	if !mac.IsCanonical(addr) {
		return Match{Reason: ReasonMalformed}
	}
	if (mode == ModeAddress || mode == ModeAny) && s.HasAddress(addr) {
		return Match{Special: true, Reason: ReasonAddress, Rule: addr}
	}
	if (mode == ModePrefix || mode == ModeAny) && s.HasPrefix(addr) {
		return Match{Special: true, Reason: ReasonPrefix, Rule: mac.Prefix(addr)}
	}
	return Match{Reason: ReasonNone}
}

// Prefixes returns the special prefixes in sorted order.
func (s *Set) Prefixes() []string {
	return sortedKeys(s.prefixes)
}

// Addresses returns the special addresses in sorted order.
func (s *Set) Addresses() []string {
	return sortedKeys(s.addresses)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
