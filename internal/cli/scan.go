package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaco/specialmac/internal/discovery"
	"github.com/jaco/specialmac/internal/logging"
	"github.com/jaco/specialmac/internal/neighbor"
)

var arpParsers = map[string]func(string) []discovery.ARPEntry{
	"auto":     discovery.ParseARP,
	"linux":    discovery.ParseLinuxARP,
	"bsd":      discovery.ParseBSDARP,
	"mikrotik": discovery.ParseMikroTikARP,
}

func newScanCmd(opts *options) *cobra.Command {
	var (
		format      string
		onlySpecial bool
		live        bool
		subnet      string
	)

	cmd := &cobra.Command{
		Use:   "scan [FILE]",
		Short: "Classify every neighbor in an ARP table dump",
		Long: `Read an ARP / neighbor table dump and report which hosts have special
MAC addresses. Supported formats: Linux "ip neigh show", BSD/macOS "arp -a"
and MikroTik "/ip arp print terse". FILE defaults to stdin.

With --live the local host's table is read directly with "ip neigh show"
or "arp -an", whichever is available.

Examples:
  ip neigh show | specialmac scan
  specialmac scan --live --subnet 192.168.1.0/24
  specialmac scan --only-special --format mikrotik arp.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if live && name != "" {
				return fmt.Errorf("--live does not take a FILE argument")
			}
			return runScan(cmd, opts, scanInput{
				name:   name,
				format: format,
				live:   live,
				subnet: subnet,
				runner: neighbor.ExecRunner,
			}, onlySpecial)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "auto", "dump format: auto, linux, bsd or mikrotik")
	cmd.Flags().BoolVar(&onlySpecial, "only-special", false, "list only neighbors with special MACs")
	cmd.Flags().BoolVar(&live, "live", false, "read the local neighbor table instead of a dump")
	cmd.Flags().StringVarP(&subnet, "subnet", "s", "", "only neighbors inside this subnet (CIDR or 3-octet shorthand, --live only)")
	return cmd
}

// scanInput says where the neighbor entries come from.
type scanInput struct {
	name   string
	format string
	live   bool
	subnet string
	runner neighbor.CommandRunner
}

func runScan(cmd *cobra.Command, opts *options, src scanInput, onlySpecial bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	entries, err := loadEntries(ctx, cmd, src)
	if err != nil {
		return err
	}

	log := logging.FromContext(cmd.Context())
	log.Debug("neighbor entries loaded", slog.Bool("live", src.live), slog.Int("entries", len(entries)))

	classifier := discovery.NewClassifier(opts.set, opts.matchBy,
		discovery.WithStrict(opts.cfg.Strict),
		discovery.WithLogger(log),
	)
	devices, err := classifier.Classify(ctx, entries, nil)
	if err != nil {
		return fmt.Errorf("classification aborted: %w", err)
	}

	total := len(devices)
	specials := discovery.FilterSpecial(devices)
	if onlySpecial {
		devices = specials
	}

	p := newPrinter(cmd.OutOrStdout(), opts.noColor)
	if len(devices) > 0 {
		fmt.Fprint(p.w, p.renderTable(deviceTable(devices)))
		fmt.Fprintln(p.w)
	}
	fmt.Fprintf(p.w, "%d of %d neighbors special (mode %s)\n", len(specials), total, opts.matchBy)
	return nil
}

// loadEntries reads entries from the live neighbor table or from a dump.
func loadEntries(ctx context.Context, cmd *cobra.Command, src scanInput) ([]discovery.ARPEntry, error) {
	if src.live {
		subnet, err := neighbor.ParseSubnet(src.subnet)
		if err != nil {
			return nil, err
		}
		source, err := neighbor.Detect(ctx, src.runner)
		if err != nil {
			return nil, err
		}
		logging.FromContext(ctx).Debug("reading live neighbor table", slog.String("tool", string(source.Type())))
		return source.Table(ctx, subnet)
	}

	parse, ok := arpParsers[strings.ToLower(src.format)]
	if !ok {
		return nil, fmt.Errorf("unknown dump format %q: must be auto, linux, bsd or mikrotik", src.format)
	}

	in, closeIn, err := openInput(cmd, src.name)
	if err != nil {
		return nil, err
	}
	defer closeIn()

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read ARP dump: %w", err)
	}
	return parse(string(data)), nil
}

func deviceTable(devices []discovery.Device) table {
	t := table{Headers: []string{"IP", "MAC", "VENDOR", "KIND", "SPECIAL", "RULE"}}
	for _, d := range devices {
		status := "no"
		if d.Special() {
			status = "yes"
		}
		rule := ""
		if d.Special() {
			rule = fmt.Sprintf("%s %s", d.Match.Reason, d.Match.Rule)
		}
		t.Rows = append(t.Rows, []string{d.IP, d.MAC, d.Vendor, d.Kind(), status, rule})
	}
	return t
}
