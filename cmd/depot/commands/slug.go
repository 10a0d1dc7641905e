package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newSlugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slug ID HASH",
		Short: "Compute the install slug of a package version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			report, err := c.app.Slug(options(cmd), args[0], args[1], name)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, report.Slug)
			for _, path := range report.Candidates {
				_, _ = fmt.Fprintln(w, path)
			}
			return nil
		},
	}
	cmd.Flags().String("name", "", "List the candidate entry files for this package name")
	return cmd
}
