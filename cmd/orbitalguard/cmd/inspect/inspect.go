package inspect

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/agentstation/orbitalguard"
	"github.com/agentstation/orbitalguard/internal/cmd/output"
	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/columns"
	"github.com/agentstation/orbitalguard/pkg/logging"
)

// FileFields is the field coverage of one JSON input.
type FileFields struct {
	Path    string                  `json:"path" yaml:"path"`
	Records int                     `json:"records" yaml:"records"`
	Fields  []sources.FieldPresence `json:"fields,omitempty" yaml:"fields,omitempty"`
	Error   string                  `json:"error,omitempty" yaml:"error,omitempty"`
}

// SheetColumns is the header resolution of the registry spreadsheet.
type SheetColumns struct {
	Path    string          `json:"path" yaml:"path"`
	Sheet   string          `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Rows    int             `json:"rows" yaml:"rows"`
	Columns []columns.Match `json:"columns,omitempty" yaml:"columns,omitempty"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the outcome of inspecting every input.
type Report struct {
	Files []FileFields  `json:"files" yaml:"files"`
	Sheet *SheetColumns  `json:"sheet,omitempty" yaml:"sheet,omitempty"`
}

// Inspect reads every input in turn. A file that cannot be read is reported
// with its error and does not stop the others.
func Inspect(ctx context.Context, in orbitalguard.Inputs) *Report {
	logger := logging.FromContext(ctx)
	report := &Report{}

	inspectJSON := func(path string, keys []string) {
		ff := FileFields{Path: path}
		records, err := sources.ReadRecords(path)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Input not readable")
			ff.Error = err.Error()
		} else {
			ff.Records = len(records)
			ff.Fields = sources.InspectFields(records, keys)
		}
		report.Files = append(report.Files, ff)
	}

	if in.Catalog != "" {
		inspectJSON(in.Catalog, catalog.CatalogFields)
	}
	if in.ActiveElements != "" {
		inspectJSON(in.ActiveElements, catalog.ElementFields)
	}
	for _, path := range in.Debris {
		inspectJSON(path, catalog.ElementFields)
	}

	if in.Details != "" {
		sc := &SheetColumns{Path: in.Details}
		sheet, err := sources.ReadSheet(in.Details)
		if err != nil {
			sc.Error = err.Error()
		} else {
			sc.Sheet = sheet.Name
			sc.Rows = len(sheet.Rows)
			sc.Columns = columns.NewResolver().ResolveAll(catalog.Headers(catalog.DetailColumns), sheet.Headers)
		}
		report.Sheet = sc
	}

	return report
}

// Print writes the report in the given format.
func Print(w io.Writer, format string, report *Report) error {
	f := output.Format(format)
	formatter := output.NewFormatter(f)
	if f.IsStructured() {
		return formatter.Format(w, report)
	}

	for _, ff := range report.Files {
		if ff.Error != "" {
			fmt.Fprintf(w, "%s: %s\n\n", ff.Path, ff.Error)
			continue
		}
		fmt.Fprintf(w, "%s (%d records)\n", ff.Path, ff.Records)
		data := output.Data{
			Headers: []string{"Field", "Present", "Empty", "Missing", "Coverage"},
			ColumnAlignment: []output.Align{
				output.AlignLeft, output.AlignRight, output.AlignRight, output.AlignRight, output.AlignRight,
			},
		}
		for _, p := range ff.Fields {
			data.Rows = append(data.Rows, []string{
				p.Field,
				strconv.Itoa(p.Present),
				strconv.Itoa(p.Empty),
				strconv.Itoa(p.Missing),
				fmt.Sprintf("%.1f%%", p.Coverage()*100),
			})
		}
		if err := formatter.Format(w, data); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if sc := report.Sheet; sc != nil {
		if sc.Error != "" {
			fmt.Fprintf(w, "%s: %s\n", sc.Path, sc.Error)
			return nil
		}
		fmt.Fprintf(w, "%s, sheet %q (%d rows)\n", sc.Path, sc.Sheet, sc.Rows)
		data := output.Data{Headers: []string{"Expected", "Header", "Match"}}
		for _, m := range sc.Columns {
			data.Rows = append(data.Rows, []string{m.Expected, m.Header, string(m.Kind)})
		}
		return formatter.Format(w, data)
	}
	return nil
}
