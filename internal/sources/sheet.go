package sources

import (
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/orbitalguard/pkg/errors"
)

// Sheet is the first worksheet of a workbook: one header row followed by data rows.
type Sheet struct {
	Path    string
	Name    string
	Headers []string
	// Rows are padded or cut to the header width.
	Rows [][]string
}

// Cell returns the value at column idx of row, or "" when idx is out of range.
func (s Sheet) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ReadSheet reads the first worksheet of the workbook at path. Cell values are
// read raw, without the workbook's number formats applied.
func ReadSheet(path string) (Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Sheet{}, errors.WrapParse(string(KindXLSX), path, err)
	}
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	if len(names) == 0 {
		return Sheet{}, errors.NewParseError(string(KindXLSX), path, "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(names[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, errors.WrapParse(string(KindXLSX), path, err)
	}
	if len(rows) == 0 {
		return Sheet{}, errors.NewParseError(string(KindXLSX), path, "sheet "+names[0]+" has no header row", nil)
	}

	sheet := Sheet{
		Path:    path,
		Name:    names[0],
		Headers: rows[0],
		Rows:    make([][]string, 0, len(rows)-1),
	}
	width := len(sheet.Headers)
	for _, row := range rows[1:] {
		padded := make([]string, width)
		copy(padded, row)
		sheet.Rows = append(sheet.Rows, padded)
	}
	return sheet, nil
}
