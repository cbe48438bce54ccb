// Package render writes the decision report to a terminal: a summary line
// and one card per truck, mirroring the dashboard layout.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/fleet-cli/internal/fleet"
)

var printer = message.NewPrinter(language.English)

// NoDataMessage is shown when the engine produced an empty report.
const NoDataMessage = "No data found. Ensure the finance roster is present or add trucks with 'fleet-cli add'."

// Summary writes the roll-up metrics line.
func Summary(w io.Writer, s fleet.Summary) {
	printer.Fprintf(w, "Trucks: %d  |  Total Equity: $%.0f  |  Avg Odometer: %.0f  |  Avg CPM: $%.2f\n",
		s.Trucks, s.TotalEquity, s.AvgOdometer, s.AvgCPM)
}

// Cards writes one block per truck.
func Cards(w io.Writer, records []fleet.Record) {
	for _, r := range records {
		fmt.Fprintf(w, "%s (%s %s)  [%s]\n", r.UnitID, r.Year, r.Make, r.Action)
		fmt.Fprintf(w, "  %s\n", r.Reasoning)
		printer.Fprintf(w, "  Equity: $%.0f  Resale: $%.0f  CPM: $%.2f  Miles: %.0f\n\n",
			r.NetEquity, r.EstResale, r.CPM, r.Odometer)
	}
}

// Table writes an aligned tabular view.
func Table(w io.Writer, records []fleet.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tYEAR\tMAKE\tACTION\tEQUITY\tRESALE\tCPM\tMILES\tREASONING")
	for _, r := range records {
		printer.Fprintf(tw, "%s\t%s\t%s\t%s\t$%.0f\t$%.0f\t$%.2f\t%.0f\t%s\n",
			r.UnitID, r.Year, r.Make, r.Action,
			r.NetEquity, r.EstResale, r.CPM, r.Odometer, r.Reasoning)
	}
	tw.Flush() //nolint:errcheck
}
