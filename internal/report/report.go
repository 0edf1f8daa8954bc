// Package report renders a Markdown summary of a build run.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/orbitalguard/internal/importer"
	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/internal/validate"
	"github.com/agentstation/orbitalguard/pkg/catalog"
	"github.com/agentstation/orbitalguard/pkg/constants"
	"github.com/agentstation/orbitalguard/pkg/errors"
)

// Run is everything the report shows about one build.
type Run struct {
	RunID            string
	Started          time.Time
	Finished         time.Time
	Database         string
	ForeignKeyPolicy string
	TieBreak         string

	Precheck  *sources.PrecheckResult
	Batches   []*importer.BatchReport
	Warnings  []sources.SourceWarning
	Missions  int
	Integrity *validate.IntegrityReport
}

// WriteFile renders the report into path, creating its directory.
func WriteFile(path string, run Run) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := Write(f, run); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

// Write renders the report to w.
func Write(w io.Writer, run Run) error {
	doc := md.NewMarkdown(w)

	doc.H1("OrbitalGuard build " + run.RunID)
	doc.BulletList(
		md.Bold("Started:")+" "+run.Started.UTC().Format(constants.TimeFormatHuman),
		md.Bold("Duration:")+" "+run.Finished.Sub(run.Started).Round(time.Millisecond).String(),
		md.Bold("Store:")+" "+md.Code(run.Database),
		md.Bold("Foreign keys:")+" "+run.ForeignKeyPolicy,
		md.Bold("Mission tie-break:")+" "+run.TieBreak,
	)

	if run.Precheck != nil {
		doc.H2("Inputs")
		rows := make([][]string, 0, len(run.Precheck.Files))
		for _, f := range run.Precheck.Files {
			status := "ok"
			if !f.OK {
				status = f.Error
			}
			rows = append(rows, []string{string(f.Role), md.Code(filepath.Base(f.Path)), strconv.Itoa(f.Records), status})
		}
		doc.Table(md.TableSet{Header: []string{"Role", "File", "Records", "Status"}, Rows: rows})
	}

	doc.H2("Imports")
	rows := make([][]string, 0, len(run.Batches))
	for _, b := range run.Batches {
		rows = append(rows, []string{
			b.Table,
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Imported),
			skipDetail(b),
			strconv.Itoa(b.Imputed),
		})
	}
	rows = append(rows, []string{catalog.TableLaunchMissions, "", strconv.Itoa(run.Missions), "", ""})
	doc.Table(md.TableSet{Header: []string{"Table", "Rows read", "Imported", "Skipped", "Imputed"}, Rows: rows})

	var missing []string
	for _, b := range run.Batches {
		for _, c := range b.MissingColumns {
			missing = append(missing, fmt.Sprintf("%s: %s", b.Table, md.Code(c)))
		}
	}
	if len(missing) > 0 {
		doc.H3("Unavailable columns")
		doc.BulletList(missing...)
	}

	if len(run.Warnings) > 0 {
		doc.H3("Skipped sources")
		items := make([]string, 0, len(run.Warnings))
		for _, w := range run.Warnings {
			items = append(items, md.Code(filepath.Base(w.Path))+": "+w.Message)
		}
		doc.BulletList(items...)
	}

	if r := run.Integrity; r != nil {
		doc.H2("Integrity")
		doc.Table(md.TableSet{
			Header: []string{"Check", "Value"},
			Rows: [][]string{
				{"Objects still in orbit", strconv.Itoa(r.StillInOrbit)},
				{"Debris objects", strconv.Itoa(r.Debris)},
				{"Lifetime coverage", fmt.Sprintf("%d/%d (%.1f%%)", r.LifetimeFilled, r.DetailRows, r.LifetimeCoverage*100)},
				{"Lowercase class_of_orbit", strconv.Itoa(r.LowercaseClassOfOrbit)},
				{"Lowercase object_type", strconv.Itoa(r.LowercaseObjectType)},
				{"Orphan NORAD ids in Orbits", strconv.Itoa(r.OrphanOrbits)},
				{"Orphan SatelliteDetails rows", strconv.Itoa(r.OrphanDetails)},
			},
		})
		if len(r.OrbitClasses) > 0 {
			doc.H3("Orbit classes")
			doc.BulletList(r.OrbitClasses...)
		}
		doc.PlainText(md.Italic(r.Summary()))
	}

	if err := doc.Build(); err != nil {
		return errors.WrapIO("write", "report", err)
	}
	return nil
}

func skipDetail(b *importer.BatchReport) string {
	if !b.HasSkips() {
		return "0"
	}
	parts := make([]string, 0, len(b.Skipped))
	for _, reason := range b.Reasons() {
		parts = append(parts, fmt.Sprintf("%d %s", b.Skipped[reason], reason))
	}
	return strings.Join(parts, ", ")
}
