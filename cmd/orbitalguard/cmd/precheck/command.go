// Package precheck implements the precheck command.
package precheck

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/internal/cmd/application"
	"github.com/agentstation/orbitalguard/internal/cmd/output"
)

// NewCommand creates the precheck command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "precheck",
		GroupID: "core",
		Short:   "Check that every input file is present and readable",
		Args:    cobra.NoArgs,
		Long: `Precheck runs the pre-flight step of a build on its own. Every input is
opened and parsed: JSON files must hold a top-level array and the registry
workbook must have a header row on its first sheet. The store is not touched.

The command exits with a non-zero status when any file fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// Execute runs the pre-flight check and prints the status of every file.
// The error of a failed check is returned after the status is printed.
func Execute(ctx context.Context, app application.Application, out io.Writer) error {
	p, err := app.Pipeline()
	if err != nil {
		return err
	}

	result, checkErr := p.Precheck(ctx)
	if result == nil {
		return checkErr
	}

	format := output.Format(app.OutputFormat())
	if format.IsStructured() {
		if err := output.NewFormatter(format).Format(out, result); err != nil {
			return err
		}
		return checkErr
	}

	if err := output.NewFormatter(format).Format(out, tableData(result)); err != nil {
		return err
	}
	return checkErr
}

func tableData(result *orbitalguard.PrecheckResult) output.Data {
	data := output.Data{
		Headers: []string{"Role", "Path", "Status", "Records", "Columns", "Error"},
		ColumnAlignment: []output.Align{
			output.AlignLeft, output.AlignLeft, output.AlignLeft,
			output.AlignRight, output.AlignRight, output.AlignLeft,
		},
	}
	for _, f := range result.Files {
		status := "ok"
		if !f.OK {
			status = "FAILED"
		}
		columns := ""
		if f.Columns > 0 {
			columns = strconv.Itoa(f.Columns)
		}
		data.Rows = append(data.Rows, []string{
			string(f.Role), f.Path, status, strconv.Itoa(f.Records), columns, f.Error,
		})
	}
	return data
}
