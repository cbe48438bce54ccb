package fleet

// Summary holds the dashboard roll-up metrics for a record set.
type Summary struct {
	Trucks      int     `json:"trucks"`
	TotalEquity float64 `json:"total_equity"`
	AvgOdometer float64 `json:"avg_odometer"`
	AvgCPM      float64 `json:"avg_cpm"`
}

// Summarize computes the roll-up over a record set. Averages over an empty
// set are zero.
func Summarize(records []Record) Summary {
	s := Summary{Trucks: len(records)}
	if len(records) == 0 {
		return s
	}
	var odo, cpm float64
	for _, r := range records {
		s.TotalEquity += r.NetEquity
		odo += r.Odometer
		cpm += r.CPM
	}
	s.AvgOdometer = odo / float64(len(records))
	s.AvgCPM = cpm / float64(len(records))
	return s
}

// FilterByAction returns the records with the given action. An empty action
// returns the input unchanged.
func FilterByAction(records []Record, action Action) []Record {
	if action == "" {
		return records
	}
	var out []Record
	for _, r := range records {
		if r.Action == action {
			out = append(out, r)
		}
	}
	return out
}

// ParseAction validates a user-supplied action filter.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionKeep, ActionSell, ActionInspect, "":
		return Action(s), true
	}
	return "", false
}
