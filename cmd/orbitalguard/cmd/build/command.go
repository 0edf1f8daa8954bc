// Package build implements the build command, which rebuilds the catalog store.
package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/orbitalguard/internal/cmd/application"
)

// NewCommand creates the build command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Rebuild the catalog store from the input files",
		Args:    cobra.NoArgs,
		Long: `Build recreates the SQLite store and imports every input in order:

1. Space objects from the master catalog
2. Orbital element sets from the active and debris sources
3. Satellite details from the registry spreadsheet, filling missing
   lifetimes from the per orbit class strata
4. Launch missions aggregated from the space objects

All inputs are checked before the old store is removed. Rows that cannot be
imported are counted per reason and never stop the build; an integrity
report is produced at the end.`,
		Example: `  orbitalguard build                          # Build from ./ into orbitalguard.db
  orbitalguard build --data-dir data --db out.db
  orbitalguard build --fk-policy report       # Keep orphan element sets
  orbitalguard build --strata strata.yaml     # Custom lifetime strata
  orbitalguard build -o json --report run.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = addFlags(cmd)

	return cmd
}
