// Package table provides the schema-less in-memory table that all fleet
// sources are loaded into: ordered named columns, rows of arbitrary cell
// values, and lenient numeric coercion for spreadsheet-sourced data.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Row maps column name to cell value. Cells hold whatever the loader put
// there, typically strings from xlsx/csv parsing.
type Row map[string]any

// Table is an ordered-column table. Column order is significant: heuristic
// column matching resolves ties by first-in-order.
type Table struct {
	cols []string
	rows []Row
}

// New creates a table with the given column order.
func New(cols ...string) *Table {
	t := &Table{cols: make([]string, len(cols))}
	copy(t.cols, cols)
	return t
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// HasColumn reports whether the table has a column with the exact name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.cols {
		if c == name {
			return true
		}
	}
	return false
}

// AppendRow adds a row. Keys not present in the column set are added as new
// trailing columns so the table stays self-describing.
func (t *Table) AppendRow(r Row) {
	for k := range r {
		if !t.HasColumn(k) {
			t.cols = append(t.cols, k)
		}
	}
	t.rows = append(t.rows, r)
}

// AddDerived projects a new column computed per-row. If the column already
// exists its values are replaced, which keeps repeated derivations idempotent.
func (t *Table) AddDerived(name string, fn func(Row) any) {
	if !t.HasColumn(name) {
		t.cols = append(t.cols, name)
	}
	for _, r := range t.rows {
		r[name] = fn(r)
	}
}

// Rows returns the underlying rows. Callers iterate; mutation is reserved for
// the owning collaborator.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table is nil or has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.rows) == 0
}

// Clone returns a deep copy. Snapshots handed to the decision engine are
// clones so later edits to the session tables cannot leak in.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := New(t.cols...)
	out.rows = make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.rows = append(out.rows, cp)
	}
	return out
}

// AsString renders a cell as text. Nil cells are empty strings.
func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// AsFloat coerces a cell to a number. Currency punctuation is tolerated
// ("$1,234.50" parses as 1234.5). Unparseable cells report ok=false and the
// caller substitutes its defined default.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimPrefix(s, "$")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
