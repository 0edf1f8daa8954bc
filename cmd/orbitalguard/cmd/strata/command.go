// Package strata implements the strata command.
package strata

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/orbitalguard/internal/cmd/application"
	"github.com/agentstation/orbitalguard/internal/cmd/output"
	"github.com/agentstation/orbitalguard/pkg/imputation"
)

// NewCommand creates the strata command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "strata",
		GroupID: "management",
		Short:   "Show the expected lifetime used for each orbit class",
		Args:    cobra.NoArgs,
		Long: `Strata prints the expected lifetime, in years, a build substitutes for
registry rows that lack one. The value is chosen by the row's class of orbit;
the default applies to unknown classes and rows without a class.

The strata come from --file, the strata_file setting, or the built-in values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				s   imputation.Strata
				err error
			)
			if file != "" {
				s, err = imputation.LoadStrata(file)
			} else {
				s, err = app.Strata()
			}
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), app.OutputFormat(), s)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML or JSON strata file to show instead of the configured one")

	return cmd
}

// Print writes the strata in the given format.
func Print(w io.Writer, format string, s imputation.Strata) error {
	f := output.Format(format)
	if f.IsStructured() {
		return output.NewFormatter(f).Format(w, s)
	}

	data := output.Data{
		Headers:         []string{"Class of Orbit", "Lifetime (yrs.)"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
	for _, class := range s.Classes() {
		data.Rows = append(data.Rows, []string{class, strconv.FormatFloat(s.Values[class], 'f', -1, 64)})
	}
	data.Rows = append(data.Rows, []string{"(default)", strconv.FormatFloat(s.Default, 'f', -1, 64)})
	return output.NewFormatter(f).Format(w, data)
}
