// Package export writes the decision report and the edited finance roster
// back out as delimited text or spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/table"
)

// decisionColumns is the fixed, ordered decision-report schema.
var decisionColumns = []string{
	"clean_id",
	"make",
	"model",
	"year",
	"payoff_balance",
	"total_repairs",
	"odometer",
	"recent_miles",
	"est_resale",
	"net_equity",
	"cpm",
	"Action",
	"Reasoning",
}

// WriteDecisionsCSV writes the decision report as a CSV file.
func WriteDecisionsCSV(records []fleet.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close() //nolint:errcheck

	return writeDecisionsCSV(records, f)
}

func writeDecisionsCSV(records []fleet.Record, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(decisionColumns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for _, r := range records {
		if err := cw.Write(decisionRow(r)); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	return nil
}

// EncodeDecisionsCSV writes the report to an arbitrary writer, for HTTP
// download handlers.
func EncodeDecisionsCSV(records []fleet.Record, w io.Writer) error {
	return writeDecisionsCSV(records, w)
}

// WriteDecisionsXLSX writes the decision report as a spreadsheet with a
// single generic "Data" sheet.
func WriteDecisionsXLSX(records []fleet.Record, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Data")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	hdr := sheet.AddRow()
	for _, col := range decisionColumns {
		hdr.AddCell().SetString(col)
	}
	for _, r := range records {
		row := sheet.AddRow()
		for _, cell := range decisionRow(r) {
			row.AddCell().SetString(cell)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

// WriteFinanceXLSX re-exports the (possibly edited) finance roster to a
// spreadsheet with a single "Data" sheet, preserving the roster's own
// column layout.
func WriteFinanceXLSX(t *table.Table, path string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Data")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	cols := t.Columns()
	hdr := sheet.AddRow()
	for _, col := range cols {
		hdr.AddCell().SetString(col)
	}
	for _, r := range t.Rows() {
		row := sheet.AddRow()
		for _, col := range cols {
			row.AddCell().SetString(table.AsString(r[col]))
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save xlsx")
	}
	return nil
}

func decisionRow(r fleet.Record) []string {
	return []string{
		r.UnitID,
		r.Make,
		r.Model,
		r.Year,
		num(r.PayoffBalance),
		num(r.TotalRepairs),
		num(r.Odometer),
		num(r.RecentMiles),
		num(r.EstResale),
		num(r.NetEquity),
		fmt.Sprintf("%.4f", r.CPM),
		string(r.Action),
		r.Reasoning,
	}
}

// num renders a numeric field compactly: no exponent, no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
