// Package neighbor reads the local host's ARP / neighbor table.
package neighbor

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"sync"

	"github.com/jaco/specialmac/internal/discovery"
)

// Type identifies which tool produced the table.
type Type string

const (
	TypeLinux Type = "linux" // iproute2 `ip neigh show`
	TypeBSD   Type = "bsd"   // `arp -an` on BSD and macOS
)

// CommandRunner executes a command and returns its combined output.
// ExecRunner runs it on the local host; tests supply a fake.
type CommandRunner func(ctx context.Context, cmd string) (string, error)

// ErrNoTool is returned by Detect when neither ip nor arp works.
var ErrNoTool = errors.New("no neighbor table tool found (tried ip, arp)")

// Source reads neighbor entries through one specific tool.
type Source struct {
	typ  Type
	cmd  string
	run  CommandRunner
	pars func(string) []discovery.ARPEntry

	mu       sync.Mutex
	primed   bool // detected holds output not yet returned by Table
	detected string
}

// Detect picks the tool available on this host.
//
// Detection strategy:
//
//  1. `ip neigh show` succeeds -> Linux
//  2. `arp -an` succeeds -> BSD
//  3. neither -> ErrNoTool
//
// The output of the successful command is kept and served by the first
// Table call, so detecting and reading once runs the tool only once.
func Detect(ctx context.Context, run CommandRunner) (*Source, error) {
	for _, s := range []*Source{
		{typ: TypeLinux, cmd: "ip neigh show", pars: discovery.ParseLinuxARP},
		{typ: TypeBSD, cmd: "arp -an", pars: discovery.ParseBSDARP},
	} {
		if out, err := run(ctx, s.cmd); err == nil {
			s.run = run
			s.detected, s.primed = out, true
			return s, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, ErrNoTool
}

// Type returns the detected tool family.
func (s *Source) Type() Type { return s.typ }

// Table returns the current neighbor entries. When subnet is valid only
// entries inside it are returned.
func (s *Source) Table(ctx context.Context, subnet netip.Prefix) ([]discovery.ARPEntry, error) {
	out, err := s.output(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s neighbor table: %w", s.typ, err)
	}
	entries := s.pars(out)
	if !subnet.IsValid() {
		return entries, nil
	}

	filtered := entries[:0]
	for _, e := range entries {
		addr, err := netip.ParseAddr(e.IP)
		if err == nil && subnet.Contains(addr.Unmap()) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// output returns the output kept from Detect once, then runs the tool.
func (s *Source) output(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.primed {
		out := s.detected
		s.primed, s.detected = false, ""
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()
	return s.run(ctx, s.cmd)
}

// ParseSubnet accepts a CIDR ("10.0.0.0/24") or the 3-octet shorthand
// "10.0.0" meaning /24. The empty string yields the zero Prefix, which
// Table treats as "no filter".
func ParseSubnet(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Prefix{}, nil
	}
	if !strings.Contains(s, "/") && strings.Count(s, ".") == 2 {
		s += ".0/24"
	}
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid subnet %q: %w", s, err)
	}
	return p.Masked(), nil
}
