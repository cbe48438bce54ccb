// Package fetcher parses fleet source files (XLSX and CSV) into raw string
// rows. It knows nothing about roles or schemas; the loader assembles tables.
package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX parser.
type XLSXOptions struct {
	SheetName  string // if set, overrides selection
	SheetIndex int    // used when SheetName is empty and SkipAbout is false
	SkipAbout  bool   // pick the first sheet whose name does not contain "about"
}

// ReadXLSX reads one sheet of an XLSX file and returns all rows as string
// slices. Fleet exports often lead with an "About" metadata sheet; SkipAbout
// selects the first sheet that isn't one, falling back to the first sheet.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func pickSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if len(f.Sheets) == 0 {
		return nil, eris.New("xlsx: file has no sheets")
	}

	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SkipAbout {
		for _, sheet := range f.Sheets {
			if !strings.Contains(strings.ToLower(sheet.Name), "about") {
				return sheet, nil
			}
		}
		return f.Sheets[0], nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}
