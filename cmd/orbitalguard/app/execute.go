package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/orbitalguard/cmd/orbitalguard/cmd/build"
	"github.com/agentstation/orbitalguard/cmd/orbitalguard/cmd/inspect"
	"github.com/agentstation/orbitalguard/cmd/orbitalguard/cmd/man"
	"github.com/agentstation/orbitalguard/cmd/orbitalguard/cmd/precheck"
	"github.com/agentstation/orbitalguard/cmd/orbitalguard/cmd/strata"
	"github.com/agentstation/orbitalguard/cmd/orbitalguard/cmd/validate"
	"github.com/agentstation/orbitalguard/cmd/orbitalguard/cmd/version"
)

// Execute runs the orbitalguard CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "orbitalguard",
		Short:   "Space object catalog consolidation",
		Version: a.version,
		Long: `OrbitalGuard consolidates a catalog of tracked space objects, their
orbital element sets and a satellite registry spreadsheet into one SQLite
store, and checks the result for referential and categorical integrity.

Inputs are read from the data directory (--data-dir) under their
conventional names; the store (--db) is rebuilt from scratch on every build.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Global flags; only the ones the user sets override the loaded config
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.orbitalguard.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("db", "", "SQLite store file (default \"orbitalguard.db\")")
	flags.String("data-dir", "", "directory holding the input files (default \".\")")

	rootCmd.SetVersionTemplate("orbitalguard {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if f := cmd.Flags().Lookup("config"); f != nil && f.Changed {
		config, err := LoadConfig(f.Value.String())
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(cmd.Flags())
	if err := a.config.Validate(); err != nil {
		return err
	}

	if !a.customLogger {
		logger := NewLogger(a.config)
		a.logger = &logger
	}

	// Flags may have changed what the default pipeline should be
	a.mu.Lock()
	a.pipeline = nil
	a.mu.Unlock()

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(precheck.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(inspect.NewCommand(a))
	rootCmd.AddCommand(strata.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
	rootCmd.AddCommand(man.NewCommand())
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
