// Package mac parses and normalizes textual MAC-48 addresses.
//
// The canonical form used throughout specialmac is six uppercase,
// colon-separated octets: "00:1A:2B:00:00:01".
package mac

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sentinel errors returned (wrapped) by Normalize and NormalizePrefix.
var (
	// ErrEmpty means the input was empty or only whitespace.
	ErrEmpty = errors.New("mac: empty input")

	// ErrInvalidFormat means the input is not hex octets in a known notation.
	ErrInvalidFormat = errors.New("mac: invalid format")

	// ErrInvalidLength means the input parsed but has the wrong number of octets.
	ErrInvalidLength = errors.New("mac: invalid length")
)

// canonicalRe matches XX:XX:XX:XX:XX:XX with uppercase hex digits only.
var canonicalRe = regexp.MustCompile(`^[0-9A-F]{2}(?::[0-9A-F]{2}){5}$`)

// prefixRe matches a canonical 3-octet prefix XX:XX:XX.
var prefixRe = regexp.MustCompile(`^[0-9A-F]{2}(?::[0-9A-F]{2}){2}$`)

// IsCanonical reports whether s is already in canonical form.
func IsCanonical(s string) bool {
	return canonicalRe.MatchString(s)
}

// IsCanonicalPrefix reports whether s is a canonical 3-octet prefix.
func IsCanonicalPrefix(s string) bool {
	return prefixRe.MatchString(s)
}

// Normalize converts a MAC address in any common notation to canonical form.
//
// Accepted notations (case-insensitive, surrounding whitespace ignored):
//
//	00:1a:2b:00:00:01   colon
//	00-1a-2b-00-00-01   dash
//	001a.2b00.0001      Cisco dot
//	001a2b000001        bare
func Normalize(s string) (string, error) {
	b, err := parse(s, 6)
	if err != nil {
		return "", err
	}
	return format(b), nil
}

// NormalizePrefix is Normalize for a 3-octet OUI prefix ("00:1a:2b",
// "00-1A-2B" or "001a2b").
func NormalizePrefix(s string) (string, error) {
	b, err := parse(s, 3)
	if err != nil {
		return "", err
	}
	return format(b), nil
}

// Prefix returns the first three octets of a canonical address, or "" when
// addr is not canonical.
func Prefix(addr string) string {
	if !IsCanonical(addr) {
		return ""
	}
	return addr[:8]
}

// IsMulticast reports whether the group bit of the first octet is set.
// Non-canonical input returns false.
func IsMulticast(addr string) bool {
	b, ok := firstOctet(addr)
	return ok && b&0x01 != 0
}

// IsLocallyAdministered reports whether the U/L bit of the first octet is set,
// as it is for most virtual and randomized addresses.
// Non-canonical input returns false.
func IsLocallyAdministered(addr string) bool {
	b, ok := firstOctet(addr)
	return ok && b&0x02 != 0
}

func firstOctet(addr string) (byte, bool) {
	if !IsCanonical(addr) {
		return 0, false
	}
	b, err := hexByte(addr[0], addr[1])
	return b, err == nil
}

// parse decodes s into exactly n octets.
func parse(s string, n int) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmpty
	}

	var digits string
	switch {
	case !strings.ContainsAny(s, ":-."):
		digits = s
	case strings.Contains(s, "."):
		// Cisco style groups of four hex digits.
		groups := strings.Split(s, ".")
		for _, g := range groups {
			if len(g) != 4 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
			}
		}
		digits = strings.Join(groups, "")
	default:
		sep := ":"
		if strings.Contains(s, "-") {
			sep = "-"
		}
		groups := strings.Split(s, sep)
		for _, g := range groups {
			if len(g) != 2 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
			}
		}
		digits = strings.Join(groups, "")
	}

	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if len(digits) != 2*n {
		return nil, fmt.Errorf("%w: %q has %d octets, want %d", ErrInvalidLength, s, len(digits)/2, n)
	}

	out := make([]byte, n)
	for i := range out {
		b, err := hexByte(digits[2*i], digits[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		out[i] = b
	}
	return out, nil
}

func format(b []byte) string {
	parts := make([]string, len(b))
	for i, o := range b {
		parts[i] = fmt.Sprintf("%02X", o)
	}
	return strings.Join(parts, ":")
}

func hexByte(hi, lo byte) (byte, error) {
	h, l := hexValue(hi), hexValue(lo)
	if h < 0 || l < 0 {
		return 0, ErrInvalidFormat
	}
	return byte(h<<4 | l), nil
}

func hexValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}
