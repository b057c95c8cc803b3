package fvavg

import (
	"math"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

/*
Workbook read/write helpers (spec.md §6).

The Ingester needs an exact "Time, Vol, Flow" column read (fvavg.py's
pd.read_excel(usecols=...)); the Consolidator needs a looser
pattern-based column search across four column name fragments (insp,
vol / insp, flow / exp, vol / exp, flow), the way helpers.py's
find_column does. Both are provided here so neither caller re-derives
spreadsheet plumbing.
*/

// OpenWorkbook reads an xlsx file from disk.
func OpenWorkbook(path string) (*xlsx.File, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return f, nil
}

// sheetHeader returns the lowercased header cells of a sheet's first
// row, for column lookup.
func sheetHeader(sheet *xlsx.Sheet) []string {
	if len(sheet.Rows) == 0 {
		return nil
	}
	row := sheet.Rows[0]
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = strings.ToLower(strings.TrimSpace(c.Value))
	}
	return out
}

// FindColumnExact returns the index of the column whose header matches
// name exactly (case-insensitive), or -1.
func FindColumnExact(sheet *xlsx.Sheet, name string) int {
	name = strings.ToLower(name)
	for i, h := range sheetHeader(sheet) {
		if h == name {
			return i
		}
	}
	return -1
}

// FindColumn returns the index of the first column whose header
// contains every one of patterns (case-insensitive, in any order), or
// -1 if none matches. Mirrors helpers.py's find_column.
func FindColumn(sheet *xlsx.Sheet, patterns ...string) int {
	lower := make([]string, len(patterns))
	for i, p := range patterns {
		lower[i] = strings.ToLower(p)
	}
	for i, h := range sheetHeader(sheet) {
		all := true
		for _, p := range lower {
			if !strings.Contains(h, p) {
				all = false
				break
			}
		}
		if all {
			return i
		}
	}
	return -1
}

// ReadFloatColumn reads column col (0-based), skipping the header row,
// up to the first blank or non-numeric cell or the first row too short
// to have that column.
func ReadFloatColumn(sheet *xlsx.Sheet, col int) []float64 {
	var out []float64
	for _, row := range sheet.Rows[1:] {
		if col >= len(row.Cells) {
			break
		}
		v := strings.TrimSpace(row.Cells[col].Value)
		if v == "" {
			break
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			break
		}
		out = append(out, f)
	}
	return out
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *xlsx.File {
	return xlsx.NewFile()
}

// WriteFloatSheet writes one sheet with the given column headers and
// equal- or ragged-length float columns (shorter columns leave blank
// cells, matching pandas' NaN padding on to_excel).
func WriteFloatSheet(f *xlsx.File, name string, headers []string, columns [][]float64) (*xlsx.Sheet, error) {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return nil, &WriteError{Path: name, Err: err}
	}

	header := sheet.AddRow()
	for _, h := range headers {
		header.AddCell().SetValue(h)
	}

	maxLen := 0
	for _, col := range columns {
		if len(col) > maxLen {
			maxLen = len(col)
		}
	}

	for r := 0; r < maxLen; r++ {
		row := sheet.AddRow()
		for _, col := range columns {
			cell := row.AddCell()
			if r < len(col) && !math.IsNaN(col[r]) {
				cell.SetFloat(col[r])
			}
		}
	}

	return sheet, nil
}

// AppendNoteRows appends a blank row followed by one row per note
// string, in a single-column "Note" layout (writer.py's trailing
// pd.DataFrame({"Note": [...]}) blocks).
func AppendNoteRows(sheet *xlsx.Sheet, notes ...string) {
	sheet.AddRow()
	for _, n := range notes {
		row := sheet.AddRow()
		row.AddCell().SetValue(n)
	}
}

// AppendLabelValueRow appends a blank row followed by one
// (label, value) row — writer.py's `{"": ["", "TLC"], "Value": ["", tlc]}`
// trailer pattern.
func AppendLabelValueRow(sheet *xlsx.Sheet, label string, value float64) {
	sheet.AddRow()
	row := sheet.AddRow()
	row.AddCell().SetValue(label)
	row.AddCell().SetFloat(value)
}

// Save writes the workbook to path.
func Save(f *xlsx.File, path string) error {
	if err := f.Save(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
