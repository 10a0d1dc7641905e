// Package commands implements the CLI commands for depot.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/build"
)

// CLI represents the command line interface for depot.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, opts app.Options, names []string, from string) ([]app.Resolution, error)
	Load(ctx context.Context, opts app.Options, names []string, from string) (*app.LoadReport, error)
	Environments(ctx context.Context, opts app.Options) (*app.EnvironmentReport, error)
	Slug(opts app.Options, id, hash, name string) (*app.SlugReport, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depot",
		Short:         "Resolve package identities and locate their sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a depot.config.yaml file")
	flags.StringSlice("load-path", nil, "Load path entries, highest precedence first (\"@\" is the active project)")
	flags.StringSlice("cache-root", nil, "Cache roots searched for installed packages, in order")
	flags.Bool("verbose", false, "Log resolution steps")
	flags.Bool("json", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newEnvCmd())
	rootCmd.AddCommand(c.newSlugCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options collects the persistent flags.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	loadPath, _ := flags.GetStringSlice("load-path")
	cacheRoots, _ := flags.GetStringSlice("cache-root")
	verbose, _ := flags.GetBool("verbose")
	jsonLogs, _ := flags.GetBool("json")

	return app.Options{
		ConfigFile: configFile,
		LoadPath:   loadPath,
		CacheRoots: cacheRoots,
		Verbose:    verbose,
		JSONLogs:   jsonLogs,
	}
}
