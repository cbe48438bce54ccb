package fleet

import "github.com/sells-group/fleet-cli/internal/table"

// Reduction selects how multiple rows for one truck collapse to a single
// value.
type Reduction int

const (
	// Sum accumulates event-like rows: each row is a discrete occurrence
	// (a repair invoice, a trip's distance).
	Sum Reduction = iota
	// Max keeps the highest observed value for snapshot-like rows
	// (odometer readings), since no reliable timestamp ordering is assumed.
	Max
)

// Aggregate collapses a table with a resolved canonical key to one value per
// distinct key. Non-numeric cells contribute zero. Trucks with no rows in the
// source simply do not appear; the merge supplies their default.
func Aggregate(t *table.Table, valueCol string, kind Reduction) map[string]float64 {
	if t.Empty() || !t.HasColumn(KeyColumn) {
		return nil
	}
	out := make(map[string]float64)
	for _, row := range t.Rows() {
		key := table.AsString(row[KeyColumn])
		if key == "" {
			continue
		}
		v, _ := table.AsFloat(row[valueCol])
		prev, seen := out[key]
		switch kind {
		case Max:
			if !seen || v > prev {
				out[key] = v
			}
		default:
			out[key] = prev + v
		}
	}
	return out
}
