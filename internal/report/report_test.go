package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/orbitalguard/internal/importer"
	"github.com/agentstation/orbitalguard/internal/report"
	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/internal/validate"
	"github.com/agentstation/orbitalguard/pkg/catalog"
)

func sampleRun() report.Run {
	orbits := importer.NewBatchReport(catalog.TableOrbits)
	orbits.Total, orbits.Imported = 5, 3
	orbits.Skipped[importer.SkipForeignKey] = 1
	orbits.Skipped[importer.SkipMissingField] = 1

	details := importer.NewBatchReport(catalog.TableSatelliteDetails)
	details.Total, details.Imported, details.Imputed = 1, 1, 1
	details.MissingColumns = []string{"Country of Operator/Owner"}

	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return report.Run{
		RunID:            "0b6f3c1e",
		Started:          started,
		Finished:         started.Add(1250 * time.Millisecond),
		Database:         "orbitalguard.db",
		ForeignKeyPolicy: "enforce",
		TieBreak:         "max",
		Precheck: &sources.PrecheckResult{Files: []sources.FileStatus{
			{Role: sources.RoleCatalog, Path: "/data/data_satcat.json", Kind: sources.KindJSON, OK: true, Records: 2},
		}},
		Batches:  []*importer.BatchReport{orbits, details},
		Warnings: []sources.SourceWarning{{Path: "/data/extra.json", Message: "not a JSON array"}},
		Missions: 2,
		Integrity: &validate.IntegrityReport{
			Counts:         map[string]int{catalog.TableOrbits: 3},
			DetailRows:     1,
			LifetimeFilled: 1,
			OrbitClasses:   []string{"GEO", "LEO"},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleRun()))
	out := buf.String()

	assert.Contains(t, out, "# OrbitalGuard build 0b6f3c1e")
	assert.Contains(t, out, "1.25s")
	assert.Contains(t, out, "## Inputs")
	assert.Contains(t, out, "data_satcat.json")
	assert.Contains(t, out, "## Imports")
	assert.Contains(t, out, "1 foreign_key")
	assert.Contains(t, out, "### Unavailable columns")
	assert.Contains(t, out, "Country of Operator/Owner")
	assert.Contains(t, out, "### Skipped sources")
	assert.Contains(t, out, "## Integrity")
	assert.Contains(t, out, "1/1 (100.0%)")
	assert.Contains(t, out, "- LEO")
	assert.Contains(t, out, "no integrity issues")
}

func TestWriteWithoutOptionalSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.Run{RunID: "x"}))
	out := buf.String()

	assert.Contains(t, out, "## Imports")
	assert.NotContains(t, out, "## Inputs")
	assert.NotContains(t, out, "## Integrity")
	assert.NotContains(t, out, "Unavailable columns")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.md")
	require.NoError(t, report.WriteFile(path, sampleRun()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# OrbitalGuard build 0b6f3c1e")
}
