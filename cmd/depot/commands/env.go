package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
)

func (c *CLI) newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Describe the load path and the roots of each environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Environments(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			for _, e := range report.Environments {
				_, _ = fmt.Fprintf(out, "%s %s\n", output.Paint(out, style.Dot, style.Iris), e.Description)
				for _, root := range e.Roots {
					_, _ = fmt.Fprintf(out, "    %s %s\n", renderName(out, root), renderID(out, root))
				}
			}

			for _, root := range report.Config.CacheRoots {
				_, _ = fmt.Fprintf(out, "cache %s\n", root)
			}
			return nil
		},
	}
}
