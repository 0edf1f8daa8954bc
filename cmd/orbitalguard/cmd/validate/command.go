// Package validate implements the validate command.
package validate

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/internal/cmd/application"
	"github.com/agentstation/orbitalguard/internal/cmd/output"
	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// ErrIntegrity is returned in strict mode when the store has residual problems.
var ErrIntegrity = errors.New("integrity issues found")

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "core",
		Short:   "Run the integrity checks against an existing store",
		Args:    cobra.NoArgs,
		Long: `Validate opens the store read-only and reports row counts, lifetime
coverage, categorical values that escaped normalization and rows whose NORAD
id has no space object.`,
		Example: `  orbitalguard validate --db orbitalguard.db
  orbitalguard validate --strict     # Exit non-zero on integrity issues`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Execute(cmd.Context(), app, strict, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with a non-zero status when issues are found")

	return cmd
}

// Execute validates the configured store and prints the report.
func Execute(ctx context.Context, app application.Application, strict bool, out io.Writer) error {
	p, err := app.Pipeline()
	if err != nil {
		return err
	}

	report, err := p.Validate(ctx)
	if err != nil {
		return err
	}

	format := output.Format(app.OutputFormat())
	if format.IsStructured() {
		err = output.NewFormatter(format).Format(out, report)
	} else {
		err = output.NewFormatter(format).Format(out, tableData(report))
		if err == nil {
			_, err = fmt.Fprintln(out, report.Summary())
		}
	}
	if err != nil {
		return err
	}

	if strict && report.HasIssues() {
		return ErrIntegrity
	}
	return nil
}

func tableData(r *orbitalguard.IntegrityReport) output.Data {
	data := output.Data{
		Headers:         []string{"Check", "Value"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
	add := func(name, value string) {
		data.Rows = append(data.Rows, []string{name, value})
	}

	for _, table := range catalog.Tables {
		add(table+" rows", strconv.Itoa(r.Counts[table]))
	}
	add("Still in orbit", strconv.Itoa(r.StillInOrbit))
	add("Debris", strconv.Itoa(r.Debris))
	add("Lifetime coverage", fmt.Sprintf("%d/%d (%.1f%%)", r.LifetimeFilled, r.DetailRows, r.LifetimeCoverage*100))
	add("Orbit classes", strings.Join(r.OrbitClasses, ", "))
	add("Lowercase class of orbit", strconv.Itoa(r.LowercaseClassOfOrbit))
	add("Lowercase object type", strconv.Itoa(r.LowercaseObjectType))
	add("Orphan NORAD ids in "+catalog.TableOrbits, strconv.Itoa(r.OrphanOrbits))
	add("Orphan element sets", strconv.Itoa(r.OrphanOrbitRows))
	add("Orphan details", strconv.Itoa(r.OrphanDetails))
	return data
}
