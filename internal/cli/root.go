package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaco/specialmac/internal/config"
	"github.com/jaco/specialmac/internal/logging"
	"github.com/jaco/specialmac/internal/special"
)

// ErrNotSpecial is returned by check when at least one address is not
// special. main turns it into exit status 1 without printing it.
var ErrNotSpecial = errors.New("not every address is special")

// options holds the persistent flags and what PersistentPreRunE derives
// from them.
type options struct {
	cfgFile   string
	mode      string
	strict    bool
	verbose   bool
	logFormat string
	noColor   bool

	cfg     *config.Config
	set     *special.Set
	matchBy special.Mode
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "specialmac",
		Short: "Flag MAC addresses that belong to special prefixes or address lists",
		Long: `specialmac - classify MAC addresses against a set of special
vendor prefixes (OUIs) and special full addresses.

Without a config file the built-in sets are used:
  prefixes:  00:1A:2B, 00:1A:2C
  addresses: 20:3A:07:00:00:02`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./specialmac.yaml)")
	flags.StringVarP(&opts.mode, "mode", "m", "", "match mode: prefix, address or any (overrides config)")
	flags.BoolVar(&opts.strict, "strict", false, "only accept canonical XX:XX:XX:XX:XX:XX input")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newCheckCmd(opts),
		newScanCmd(opts),
		newListCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads the config, applies flag overrides and installs the logger.
func (o *options) setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.New(logging.Options{
		Output: cmd.ErrOrStderr(),
		Level:  level,
		Format: o.logFormat,
	})
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))

	if o.cfgFile != "" {
		o.cfg, err = config.Load(o.cfgFile)
	} else {
		o.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("mode") {
		o.cfg.Mode = o.mode
	}
	if cmd.Flags().Changed("strict") {
		o.cfg.Strict = o.strict
	}

	o.matchBy, err = o.cfg.ParsedMode()
	if err != nil {
		return err
	}
	o.set, err = o.cfg.Set()
	if err != nil {
		return err
	}

	source := o.cfg.Path
	if source == "" {
		source = "built-in"
	}
	logger.Debug("configuration loaded",
		slog.String("source", source),
		slog.String("mode", o.matchBy.String()),
		slog.Bool("strict", o.cfg.Strict),
		slog.Int("prefixes", len(o.set.Prefixes())),
		slog.Int("addresses", len(o.set.Addresses())),
	)
	return nil
}

// openInput returns the command's stdin for "" or "-", otherwise the named
// file. The returned func closes what was opened.
func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "" || name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}
