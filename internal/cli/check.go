package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaco/specialmac/internal/discovery"
	"github.com/jaco/specialmac/internal/logging"
	"github.com/jaco/specialmac/internal/mac"
	"github.com/jaco/specialmac/internal/special"
)

func newCheckCmd(opts *options) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [MAC...]",
		Short: "Check whether MAC addresses are special",
		Long: `Check one or more MAC addresses. With no arguments, addresses are
read from stdin, one per line.

Exit status is 0 when every address is special and 1 otherwise,
including when stdin holds no addresses.

Examples:
  specialmac check 00:1A:2B:00:00:01
  specialmac check --mode address 20:3A:07:00:00:02
  arp -an | awk '{print $4}' | specialmac check --quiet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addrs := args
			if len(addrs) == 0 {
				var err error
				addrs, err = readAddresses(cmd)
				if err != nil {
					return err
				}
			}
			return runCheck(cmd, opts, addrs, quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, report through the exit status only")
	return cmd
}

func runCheck(cmd *cobra.Command, opts *options, addrs []string, quiet bool) error {
	log := logging.FromContext(cmd.Context())
	p := newPrinter(cmd.OutOrStdout(), opts.noColor)

	if len(addrs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no addresses to check")
		}
		return ErrNotSpecial
	}

	allSpecial := true
	for _, raw := range addrs {
		m := discovery.ClassifyMAC(opts.set, raw, opts.matchBy, opts.cfg.Strict)
		log.Debug("checked address",
			slog.String("input", raw),
			slog.Bool("special", m.Special),
			slog.String("reason", string(m.Reason)),
		)
		if !m.Special {
			allSpecial = false
		}
		if !quiet {
			fmt.Fprintln(p.w, p.verdict(raw, m))
		}
	}

	if !allSpecial {
		return ErrNotSpecial
	}
	return nil
}

// verdict formats one result line: the address, the outcome and the rule
// that matched.
func (p *printer) verdict(raw string, m special.Match) string {
	addr := raw
	if norm, err := mac.Normalize(raw); err == nil {
		addr = norm
	}
	switch m.Reason {
	case special.ReasonPrefix, special.ReasonAddress:
		return fmt.Sprintf("%s  %s  (%s %s)", addr, p.style(p.special, "special"), m.Reason, m.Rule)
	case special.ReasonMalformed:
		return fmt.Sprintf("%s  %s", raw, p.style(p.bad, "malformed"))
	default:
		return fmt.Sprintf("%s  %s", addr, p.style(p.normal, "not special"))
	}
}

// readAddresses reads one address per line from stdin, skipping blank
// lines and # comments.
func readAddresses(cmd *cobra.Command) ([]string, error) {
	var addrs []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addrs = append(addrs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return addrs, nil
}
