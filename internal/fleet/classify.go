package fleet

import (
	"fmt"
	"strings"
)

// Action is the maintenance/disposal recommendation for one truck.
type Action string

const (
	ActionKeep    Action = "KEEP"
	ActionSell    Action = "SELL"
	ActionInspect Action = "INSPECT"
)

// Classification thresholds, fixed product decisions.
const (
	highMilesThreshold = 500000.0
	highCPMThreshold   = 0.15
	keepCPMThreshold   = 0.12
	keepMilesThreshold = 2000.0
	idleMilesThreshold = 1000.0
)

// Classify maps one truck's derived metrics to an action and a reasoning
// string. Pure per-truck function, no table context.
//
// Reasoning always lists every applicable clause, comma-separated, regardless
// of which rule decides the action. The rules are evaluated in fixed priority
// order:
//
//	A: high wear or operating cost with positive equity -> SELL
//	B: cheap to run and actively utilized               -> KEEP
//	C: underutilized and upside-down                    -> INSPECT
//
// Anything else keeps the default INSPECT.
func Classify(m Metrics) (Action, string) {
	var reasons []string
	if m.Odometer > highMilesThreshold {
		reasons = append(reasons, "High Miles")
	}
	if m.CPM > highCPMThreshold {
		reasons = append(reasons, fmt.Sprintf("High CPM ($%.2f)", m.CPM))
	}
	if m.NetEquity > 0 {
		reasons = append(reasons, "Pos Equity")
	} else {
		reasons = append(reasons, "Neg Equity")
	}

	action := ActionInspect
	switch {
	case (m.Odometer > highMilesThreshold || m.CPM > highCPMThreshold) && m.NetEquity > 0:
		action = ActionSell
	case m.CPM < keepCPMThreshold && m.RecentMiles > keepMilesThreshold:
		action = ActionKeep
	case m.RecentMiles < idleMilesThreshold && m.NetEquity < 0:
		action = ActionInspect
	}

	return action, strings.Join(reasons, ", ")
}
