package fleet

import (
	"strings"

	"github.com/sells-group/fleet-cli/internal/table"
)

// Hint names a semantic column lookup. A column matches when its lowercased
// name contains every Contains substring and none of the Exclude substrings.
// This is a heuristic over drifting export schemas ("Payment/Month" vs
// "Monthly Payment"), not a guarantee of correctness.
type Hint struct {
	Name     string
	Contains []string
	Exclude  []string
}

// The semantic columns the engine looks for, one named hint each so the
// precedence of every lookup is independently testable.
var (
	HintPayment  = Hint{Name: "monthly_payment", Contains: []string{"pay", "month"}}
	HintAmount   = Hint{Name: "repair_amount", Contains: []string{"amount"}}
	HintOdometer = Hint{Name: "odometer", Contains: []string{"odo"}}
	HintDistance = Hint{Name: "distance", Contains: []string{"dist"}}
	HintMake     = Hint{Name: "make", Contains: []string{"make"}}
	HintModel    = Hint{Name: "model", Contains: []string{"model"}}
	HintYear     = Hint{Name: "year", Contains: []string{"year"}}
)

// Match reports whether a column name satisfies the hint.
func (h Hint) Match(column string) bool {
	lower := strings.ToLower(column)
	for _, sub := range h.Contains {
		if !strings.Contains(lower, sub) {
			return false
		}
	}
	for _, sub := range h.Exclude {
		if strings.Contains(lower, sub) {
			return false
		}
	}
	return true
}

// FindColumn returns the first column in column order matching the hint.
// Absent columns are not an error: callers substitute the defined default.
func FindColumn(t *table.Table, h Hint) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, col := range t.Columns() {
		if col == KeyColumn {
			continue
		}
		if h.Match(col) {
			return col, true
		}
	}
	return "", false
}
