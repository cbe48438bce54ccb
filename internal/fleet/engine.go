// Package fleet is the reconciliation-and-decision engine: it joins
// independently-sourced truck spreadsheets on a canonical vehicle key,
// derives financial and usage metrics, and classifies every truck into a
// KEEP / SELL / INSPECT recommendation.
//
// The engine is a pure function of its input snapshot: no I/O, no retained
// state between invocations, and identical inputs produce identical output.
package fleet

import "github.com/sells-group/fleet-cli/internal/table"

// Source roles as they appear in diagnostics and loader configuration.
const (
	SourceFinance  = "finance"
	SourceRepairs  = "repairs"
	SourceOdometer = "odometer"
	SourceDistance = "distance"
	SourceMarket   = "market"
)

// Snapshot is one immutable set of input tables. The editing collaborator
// owns mutation and hands the engine a fresh snapshot per invocation;
// Version identifies which edit generation produced it.
type Snapshot struct {
	Finance  *table.Table
	Repairs  *table.Table
	Odometer *table.Table
	Distance *table.Table
	Market   *table.Table
	Version  int
}

// Record is the single reconciled row per truck: identity, merged source
// facts, derived metrics, and the decision.
type Record struct {
	UnitID        string  `json:"unit_id"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          string  `json:"year"`
	PayoffBalance float64 `json:"payoff_balance"`
	TotalRepairs  float64 `json:"total_repairs"`
	Odometer      float64 `json:"odometer"`
	RecentMiles   float64 `json:"recent_miles"`
	EstResale     float64 `json:"est_resale"`
	NetEquity     float64 `json:"net_equity"`
	CPM           float64 `json:"cpm"`
	Action        Action  `json:"action"`
	Reasoning     string  `json:"reasoning"`
}

// Diagnostic records the outcome of one heuristic resolution so callers can
// surface silently-zeroed metrics instead of losing the signal. It never
// changes engine behavior.
type Diagnostic struct {
	Source   string `json:"source"`
	Hint     string `json:"hint"`
	Column   string `json:"column,omitempty"`
	Resolved bool   `json:"resolved"`
}

// Report is the engine output: one record per finance-roster truck, in
// roster order, plus resolution diagnostics.
type Report struct {
	Records     []Record     `json:"records"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Version     int          `json:"version"`
}

// Empty reports whether the engine produced no records (missing or
// unresolvable finance roster). Callers render an explicit "no data" state
// rather than treating this as an error.
func (r *Report) Empty() bool {
	return r == nil || len(r.Records) == 0
}

// The identity diagnostic uses a pseudo-hint name since identifier columns
// resolve through ResolveIdentity, not a Hint.
const hintIdentity = "identity"

// BuildReport runs the full pipeline: resolve identities, infer semantic
// columns, aggregate per-source facts, merge onto the finance roster,
// compute metrics, classify. It never fails; every missing input degrades to
// a defined default and an empty or unresolvable finance roster yields an
// empty report.
func BuildReport(snap Snapshot) *Report {
	rep := &Report{Version: snap.Version}

	fin := snap.Finance
	if fin.Empty() {
		return rep
	}
	idCol, ok := ResolveIdentity(fin)
	rep.note(SourceFinance, hintIdentity, idCol, ok)
	if !ok {
		return rep
	}

	payCol, payOK := rep.find(fin, SourceFinance, HintPayment)
	makeCol, makeOK := rep.find(fin, SourceFinance, HintMake)
	modelCol, modelOK := rep.find(fin, SourceFinance, HintModel)
	yearCol, yearOK := rep.find(fin, SourceFinance, HintYear)

	repairs := rep.aggregate(snap.Repairs, SourceRepairs, HintAmount, Sum)
	odometer := rep.aggregate(snap.Odometer, SourceOdometer, HintOdometer, Max)
	distance := rep.aggregate(snap.Distance, SourceDistance, HintDistance, Sum)

	for _, row := range fin.Rows() {
		rec := Record{
			UnitID: table.AsString(row[KeyColumn]),
			Make:   descField(row, makeCol, makeOK),
			Model:  descField(row, modelCol, modelOK),
			Year:   descField(row, yearCol, yearOK),
		}

		// Payoff balance is estimated as one year of the monthly payment.
		if payOK {
			monthly, _ := table.AsFloat(row[payCol])
			rec.PayoffBalance = monthly * 12
		}

		rec.TotalRepairs = repairs[rec.UnitID]
		rec.Odometer = odometer[rec.UnitID]
		rec.RecentMiles = distance[rec.UnitID]

		computeMetrics(&rec)
		rec.Action, rec.Reasoning = Classify(rec.metrics())

		rep.Records = append(rep.Records, rec)
	}

	return rep
}

// find resolves a hint against a table and records the outcome.
func (r *Report) find(t *table.Table, source string, h Hint) (string, bool) {
	col, ok := FindColumn(t, h)
	r.note(source, h.Name, col, ok)
	return col, ok
}

// aggregate resolves a source table's identity and value column, then
// collapses it per truck. A source that resolves nothing contributes nothing;
// the merge zero-fills.
func (r *Report) aggregate(t *table.Table, source string, h Hint, kind Reduction) map[string]float64 {
	if t.Empty() {
		return nil
	}
	idCol, ok := ResolveIdentity(t)
	r.note(source, hintIdentity, idCol, ok)
	if !ok {
		return nil
	}
	valueCol, ok := r.find(t, source, h)
	if !ok {
		return nil
	}
	return Aggregate(t, valueCol, kind)
}

func (r *Report) note(source, hint, column string, resolved bool) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Source:   source,
		Hint:     hint,
		Column:   column,
		Resolved: resolved,
	})
}

func descField(row table.Row, col string, ok bool) string {
	if !ok {
		return "N/A"
	}
	s := table.AsString(row[col])
	if s == "" {
		return "N/A"
	}
	return s
}
