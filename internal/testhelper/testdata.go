// Package testhelper writes input fixtures for pipeline tests.
package testhelper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/orbitalguard/internal/sources"
	"github.com/agentstation/orbitalguard/pkg/constants"
)

// Expected outcome of a build over Fixture.
const (
	FixtureObjects      = 2
	FixtureKnownOrbits  = 3
	FixtureOrphanOrbits = 1
	FixtureMissingEpoch = 1
	FixtureDetails      = 1
	FixtureMissions     = 2
	FixtureOrphanID     = 99999
)

// DetailHeaders is a registry header row with the dotted units the real
// workbook uses.
var DetailHeaders = []string{
	"Name of Satellite, Alternate Names", "Country of Operator/Owner", "Operator/Owner",
	"Users", "Purpose", "Class of Orbit", "Launch Mass (kg.)", "Dry Mass (kg.)",
	"Power (watts)", "Expected Lifetime (yrs.)", "Contractor", "NORAD Number",
}

// WriteJSON marshals v into dir/name and returns the path.
func WriteJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal %s: %v", name, err)
	}
	return WriteFile(t, dir, name, data)
}

// WriteFile writes raw bytes into dir/name and returns the path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// WriteWorkbook writes a single-sheet workbook with a header row followed by rows.
func WriteWorkbook(t *testing.T, dir, name string, headers []string, rows ...[]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	for i, row := range append([][]any{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("Failed to address row %d: %v", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("Failed to write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook %s: %v", path, err)
	}
	return path
}

// Fixture writes a small but complete input set into a fresh temp directory:
// two catalog objects, element sets for both plus one for an unknown object
// and one without an epoch, and a single registry row with a lowercase orbit
// class and no lifetime.
func Fixture(t *testing.T) sources.Inputs {
	t.Helper()
	dir := t.TempDir()
	in := sources.DefaultInputs(dir)

	WriteJSON(t, dir, constants.DefaultCatalogFile, []map[string]any{
		{
			"NORAD_CAT_ID": 25544, "SATNAME": " ISS (ZARYA) ", "INTLDES": "1998-067A",
			"OBJECT_TYPE": "payload", "COUNTRY": "iss", "LAUNCH": "1998-11-20",
			"DECAY": nil, "RCS_SIZE": "large", "SITE": "tyms",
		},
		{
			"NORAD_CAT_ID": "34454", "SATNAME": "COSMOS 2251 DEB", "INTLDES": "1993-036PX",
			"OBJECT_TYPE": "DEBRIS", "COUNTRY": "CIS", "LAUNCH": "1993-06-16",
			"DECAY": "2020-05-05", "RCS_SIZE": "N/A", "SITE": "PKMTR",
		},
	})

	WriteJSON(t, dir, constants.DefaultActiveElementsFile, []map[string]any{
		{"NORAD_CAT_ID": 25544, "EPOCH": "2024-01-01T00:00:00.000", "INCLINATION": 51.64, "ECCENTRICITY": 0.0005, "MEAN_MOTION": 15.5, "BSTAR": "0.00012"},
		{"NORAD_CAT_ID": 25544, "EPOCH": "2024-01-02T00:00:00.000", "INCLINATION": "51.64", "MEAN_MOTION": "NaN"},
		{"NORAD_CAT_ID": 25544, "INCLINATION": 51.64},
	})

	elementSets := [][]map[string]any{
		{{"NORAD_CAT_ID": 34454, "EPOCH": "2019-03-01T12:00:00.000", "INCLINATION": 74.03}},
		{{"NORAD_CAT_ID": FixtureOrphanID, "EPOCH": "2019-03-01T12:00:00.000"}},
		{},
	}
	for i, name := range constants.DefaultDebrisFiles {
		WriteJSON(t, dir, name, elementSets[i%len(elementSets)])
	}

	WriteWorkbook(t, dir, constants.DefaultDetailsFile, DetailHeaders,
		[]any{"ISS", "Multinational", "NASA/Multinational", "Government", "Space Science", "leo", 419725, "", "", "", "Boeing", 25544},
	)

	return in
}
