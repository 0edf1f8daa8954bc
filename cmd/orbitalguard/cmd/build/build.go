package build

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/internal/cmd/application"
	"github.com/agentstation/orbitalguard/internal/cmd/output"
)

// Execute runs a build with the given flags and prints the result to out.
// Stage progress goes to errOut for table output.
func Execute(ctx context.Context, app application.Application, flags *Flags, out, errOut io.Writer) error {
	opts, err := flags.Options()
	if err != nil {
		return err
	}

	p, err := app.Pipeline(opts...)
	if err != nil {
		return err
	}

	format := output.Format(app.OutputFormat())
	if !format.IsStructured() {
		p.OnStageComplete(progress(errOut))
	}

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if format.IsStructured() {
		return output.NewFormatter(format).Format(out, result)
	}
	return printResult(out, format, result)
}

// progress prints one line per completed stage.
func progress(w io.Writer) orbitalguard.StageHook {
	return func(ev orbitalguard.StageEvent) {
		status := "done"
		if ev.Err != nil {
			status = "failed"
		}
		fmt.Fprintf(w, "%-18s %-6s %s\n", ev.Stage, status, ev.Duration.Round(time.Millisecond))
	}
}

func printResult(w io.Writer, format output.Format, result *orbitalguard.Result) error {
	data := output.Data{
		Headers: []string{"Table", "Rows", "Imported", "Skipped", "Imputed"},
		ColumnAlignment: []output.Align{
			output.AlignLeft, output.AlignRight, output.AlignRight, output.AlignLeft, output.AlignRight,
		},
	}
	if format == output.FormatWide {
		data.Headers = append(data.Headers, "Unavailable Columns")
		data.ColumnAlignment = append(data.ColumnAlignment, output.AlignLeft)
	}

	for _, b := range result.Batches() {
		skipped := strconv.Itoa(b.SkippedTotal())
		if b.HasSkips() {
			parts := make([]string, 0, len(b.Skipped))
			for _, reason := range b.Reasons() {
				parts = append(parts, fmt.Sprintf("%d %s", b.Skipped[reason], reason))
			}
			skipped = strings.Join(parts, ", ")
		}
		row := []string{b.Table, strconv.Itoa(b.Total), strconv.Itoa(b.Imported), skipped, strconv.Itoa(b.Imputed)}
		if format == output.FormatWide {
			row = append(row, strings.Join(b.MissingColumns, ", "))
		}
		data.Rows = append(data.Rows, row)
	}

	fmt.Fprintf(w, "Run %s (%s) into %s\n\n", result.RunID, result.Duration().Round(time.Millisecond), result.Database)
	if err := output.NewFormatter(format).Format(w, data); err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s: %s\n", warning.Path, warning.Message)
	}
	if result.Integrity != nil {
		fmt.Fprintf(w, "\nIntegrity: %s\n", result.Integrity.Summary())
	}
	return nil
}
