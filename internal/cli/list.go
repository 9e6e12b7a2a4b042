package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the active special prefixes and addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout(), opts.noColor)

			source := opts.cfg.Path
			if source == "" {
				source = "built-in defaults"
			}
			fmt.Fprintf(p.w, "%s %s\n", p.style(p.dim, "source:"), source)
			fmt.Fprintf(p.w, "%s %s\n", p.style(p.dim, "mode:  "), opts.matchBy)
			fmt.Fprintf(p.w, "%s %t\n\n", p.style(p.dim, "strict:"), opts.cfg.Strict)

			fmt.Fprintln(p.w, p.style(p.header, "Prefixes"))
			for _, pfx := range opts.set.Prefixes() {
				fmt.Fprintf(p.w, "  %s\n", pfx)
			}
			fmt.Fprintln(p.w, p.style(p.header, "Addresses"))
			for _, a := range opts.set.Addresses() {
				fmt.Fprintf(p.w, "  %s\n", a)
			}
			return nil
		},
	}
}
