// Package inspect implements the inspect command, a read-only look at the
// input files: which fields the JSON sources carry and how the registry
// spreadsheet headers resolve.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/orbitalguard/internal/cmd/application"
)

// NewCommand creates the inspect command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect",
		GroupID: "management",
		Short:   "Show field coverage of the inputs",
		Args:    cobra.NoArgs,
		Long: `Inspect reads the inputs without building anything. For each JSON source
it counts, per field the importers read, how many records carry a value, an
empty value or no key at all. For the registry spreadsheet it shows which
sheet header each expected column resolved to and how.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := Inspect(cmd.Context(), app.Inputs())
			return Print(cmd.OutOrStdout(), app.OutputFormat(), report)
		},
	}
}
