package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load NAME...",
		Short: "Load packages with their dependencies and print the tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")

			report, err := c.app.Load(cmd.Context(), options(cmd), args, from)
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			for _, line := range report.Lines {
				id := line.Module.Identity
				row := strings.Repeat("  ", line.Depth) + renderName(out, id) + " " + renderID(out, id)
				if line.Seen {
					row += " " + output.Paint(out, "(shared)", style.Slate)
				}
				_, _ = fmt.Fprintln(out, row)
			}
			_, _ = fmt.Fprintf(out, "%s %d packages loaded\n", output.Paint(out, style.Check, style.Green), report.Total)
			return nil
		},
	}
	cmd.Flags().String("from", "", "Load as imported by this package (id or root name)")
	return cmd
}
