package fleet

import (
	"strings"

	"github.com/sells-group/fleet-cli/internal/table"
)

// KeyColumn is the canonical vehicle key projected onto every source table
// that resolves an identifier. All joins happen on this column.
const KeyColumn = "clean_id"

// idPrefix is the fleet-management export prefix that some sources put in
// front of the unit number and others do not.
const idPrefix = "SPOT-"

// CanonicalKey normalizes a raw identifier so the same physical truck joins
// across sources regardless of export formatting.
func CanonicalKey(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, idPrefix, ""))
}

// ResolveIdentity locates the vehicle identifier column and projects the
// canonical key as a new column. Column order defines precedence: the first
// column whose name contains "unit", or contains "truck" without "price",
// wins. The original identifier values are left untouched.
//
// Returns the matched column name, or ok=false when the table has no
// recognizable identifier, in which case the table contributes nothing to
// downstream joins.
func ResolveIdentity(t *table.Table) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, col := range t.Columns() {
		lower := strings.ToLower(col)
		if strings.Contains(lower, "unit") ||
			(strings.Contains(lower, "truck") && !strings.Contains(lower, "price")) {
			idCol := col
			t.AddDerived(KeyColumn, func(r table.Row) any {
				return CanonicalKey(table.AsString(r[idCol]))
			})
			return col, true
		}
	}
	return "", false
}
