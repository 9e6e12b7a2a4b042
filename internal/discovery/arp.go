package discovery

import (
	"regexp"
	"strings"
)

// ARPEntry represents a single row from a neighbor/ARP table dump.
type ARPEntry struct {
	IP    string
	MAC   string
	Iface string
	Flags string // "D", "DH" for MikroTik; neighbor state for Linux; "permanent" etc. for BSD
	Name  string // hostname, BSD format only
}

// macPattern matches a colon-separated MAC in either case.
const macPattern = `([0-9A-Fa-f]{2}(?::[0-9A-Fa-f]{2}){5})`

// ipv4Pattern matches a dotted-quad IPv4 address.
const ipv4Pattern = `(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`

// ipPattern matches an IPv4 or IPv6 address loosely; netip validates later.
const ipPattern = `([0-9A-Fa-f.:]+)`

// MikroTik terse ARP format (from `/ip arp print terse`):
//
//	0 DH 10.0.0.2 AA:BB:CC:DD:EE:FF bridge1
//	1  D 10.0.0.3 11:22:33:44:55:66 ether1
//
// Fields: index, flags, IP, MAC, interface.
// Flags may be empty, single char, or multi-char (D, DH, etc.).
var mikrotikARPRe = regexp.MustCompile(
	`^\s*\d+\s+([A-Z]*)\s+` + ipv4Pattern + `\s+` + macPattern + `\s+(\S+)`,
)

// Linux `ip neigh show` format:
//
//	10.0.0.2 dev eth1 lladdr AA:BB:CC:DD:EE:FF REACHABLE
//	fe80::1 dev eth1 lladdr 11:22:33:44:55:66 router STALE
//	10.0.0.4 dev eth1  FAILED
//
// Fields: IP, interface, MAC, state (REACHABLE, STALE, DELAY, etc.).
// Lines with FAILED or INCOMPLETE have no lladdr and are skipped.
var linuxARPRe = regexp.MustCompile(
	`^` + ipPattern + `\s+dev\s+(\S+)\s+lladdr\s+` + macPattern + `\s+(?:router\s+)?(\S+)`,
)

// BSD / macOS `arp -a` format:
//
//	host.lan (192.168.1.2) at ab:cd:ef:ab:cd:ef on en0 ifscope [ethernet]
//	? (192.168.1.9) at 0:1a:2b:0:0:1 on en0 permanent [ethernet]
//	? (192.168.1.7) at (incomplete) on en0 ifscope [ethernet]
//
// Fields: name or "?", IP, MAC, interface, optional "permanent".
// BSD drops leading zeros in octets, so the MAC is captured loosely and
// padded by padOctets.
var bsdARPRe = regexp.MustCompile(
	`^(\S+)\s+\(` + ipPattern + `\)\s+at\s+` +
		`([0-9A-Fa-f]{1,2}(?::[0-9A-Fa-f]{1,2}){5})\s+on\s+(\S+)(?:.*\b(permanent)\b)?`,
)

// ParseMikroTikARP parses the output of `/ip arp print terse`.
func ParseMikroTikARP(output string) []ARPEntry {
	return parseLines(output, parseMikroTikLine)
}

// ParseLinuxARP parses the output of `ip neigh show`.
func ParseLinuxARP(output string) []ARPEntry {
	return parseLines(output, parseLinuxLine)
}

// ParseBSDARP parses the output of `arp -a` on BSD and macOS.
func ParseBSDARP(output string) []ARPEntry {
	return parseLines(output, parseBSDLine)
}

// ParseARP parses a dump in any supported format. Each line is tried
// against every format, so concatenated dumps from different hosts work.
func ParseARP(output string) []ARPEntry {
	return parseLines(output, func(line string) (ARPEntry, bool) {
		for _, parse := range []func(string) (ARPEntry, bool){
			parseLinuxLine, parseBSDLine, parseMikroTikLine,
		} {
			if e, ok := parse(line); ok {
				return e, true
			}
		}
		return ARPEntry{}, false
	})
}

func parseLines(output string, parse func(string) (ARPEntry, bool)) []ARPEntry {
	var entries []ARPEntry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if e, ok := parse(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func parseMikroTikLine(line string) (ARPEntry, bool) {
	m := mikrotikARPRe.FindStringSubmatch(line)
	if m == nil {
		return ARPEntry{}, false
	}
	return ARPEntry{
		Flags: m[1],
		IP:    m[2],
		MAC:   strings.ToUpper(m[3]),
		Iface: m[4],
	}, true
}

func parseLinuxLine(line string) (ARPEntry, bool) {
	m := linuxARPRe.FindStringSubmatch(line)
	if m == nil {
		// Skip lines without lladdr (FAILED, INCOMPLETE).
		return ARPEntry{}, false
	}
	return ARPEntry{
		IP:    m[1],
		Iface: m[2],
		MAC:   strings.ToUpper(m[3]),
		Flags: m[4],
	}, true
}

func parseBSDLine(line string) (ARPEntry, bool) {
	m := bsdARPRe.FindStringSubmatch(line)
	if m == nil {
		return ARPEntry{}, false
	}
	name := m[1]
	if name == "?" {
		name = ""
	}
	return ARPEntry{
		Name:  name,
		IP:    m[2],
		MAC:   padOctets(m[3]),
		Iface: m[4],
		Flags: m[5],
	}, true
}

// padOctets turns "0:1a:2b:0:0:1" into "00:1A:2B:00:00:01".
func padOctets(s string) string {
	parts := strings.Split(s, ":")
	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}
	return strings.ToUpper(strings.Join(parts, ":"))
}
