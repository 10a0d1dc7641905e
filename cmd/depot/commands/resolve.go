package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/ui/output"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Print the identity and entry file bound to each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")

			resolutions, err := c.app.Resolve(cmd.Context(), options(cmd), args, from)
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			for _, r := range resolutions {
				_, _ = fmt.Fprintf(out, "%s %s %s\n", renderName(out, r.Identity), renderID(out, r.Identity), r.Path)
			}
			return nil
		},
	}
	cmd.Flags().String("from", "", "Resolve as imported by this package (id or root name)")
	return cmd
}
