// Package session owns the mutable finance roster between engine
// invocations. The engine itself is pure; all editing state lives here, and
// every recomputation receives an independent versioned snapshot.
package session

import (
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/table"
)

// Default column names used when a truck is added to a roster that lacks the
// corresponding column.
const (
	colUnitID  = "Unit ID"
	colMake    = "Make"
	colModel   = "Model"
	colYear    = "Year"
	colPayment = "Monthly Payment"
)

// Truck is one data-entry row for the finance roster.
type Truck struct {
	UnitID         string  `json:"unit_id"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	Year           string  `json:"year"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

// Session holds the source tables for one editing session. Only the finance
// roster mutates; the other sources are fixed for the session's lifetime.
type Session struct {
	mu      sync.Mutex
	snap    fleet.Snapshot
	version int
}

// New starts a session from a loaded snapshot.
func New(snap fleet.Snapshot) *Session {
	return &Session{snap: snap}
}

// Snapshot returns an immutable copy of the current inputs for one engine
// invocation. All tables are deep-copied: edits cannot leak into an in-flight
// recomputation, and the engine's key projection stays off the shared tables.
func (s *Session) Snapshot() fleet.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fleet.Snapshot{
		Finance:  s.snap.Finance.Clone(),
		Repairs:  s.snap.Repairs.Clone(),
		Odometer: s.snap.Odometer.Clone(),
		Distance: s.snap.Distance.Clone(),
		Market:   s.snap.Market.Clone(),
		Version:  s.version,
	}
}

// Version reports the current edit generation.
func (s *Session) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Finance returns a copy of the current finance roster, for export.
func (s *Session) Finance() *table.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Finance.Clone()
}

// ReplaceFinance swaps in a new finance roster and bumps the version.
func (s *Session) ReplaceFinance(t *table.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Finance = t
	s.version++
}

// AddTruck appends a row to the finance roster. Values land in the roster's
// own columns where the usual heuristics resolve them, so a subsequent
// recomputation picks the truck up like any loaded row.
func (s *Session) AddTruck(tr Truck) error {
	if tr.UnitID == "" {
		return eris.New("session: unit id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fin := s.snap.Finance
	if fin == nil {
		fin = table.New(colUnitID, colMake, colModel, colYear, colPayment)
		s.snap.Finance = fin
	}

	row := table.Row{
		s.idColumn():                                   tr.UnitID,
		s.financeColumn(fleet.HintMake, colMake):       tr.Make,
		s.financeColumn(fleet.HintModel, colModel):     tr.Model,
		s.financeColumn(fleet.HintYear, colYear):       tr.Year,
		s.financeColumn(fleet.HintPayment, colPayment): tr.MonthlyPayment,
	}
	fin.AppendRow(row)
	s.version++

	zap.L().Info("session: truck added",
		zap.String("unit_id", tr.UnitID),
		zap.Int("version", s.version),
	)
	return nil
}

// idHints mirror the identity resolver's heuristics, so added trucks land in
// the roster's existing identifier column.
var idHints = []fleet.Hint{
	{Name: "identity", Contains: []string{"unit"}},
	{Name: "identity", Contains: []string{"truck"}, Exclude: []string{"price"}},
}

func (s *Session) idColumn() string {
	for _, h := range idHints {
		if col, ok := fleet.FindColumn(s.snap.Finance, h); ok {
			return col
		}
	}
	return colUnitID
}

// financeColumn resolves where a value should be written: the roster's
// existing column for the hint, or the canonical default column.
func (s *Session) financeColumn(h fleet.Hint, fallback string) string {
	if col, ok := fleet.FindColumn(s.snap.Finance, h); ok {
		return col
	}
	return fallback
}

// Recompute runs the decision engine over the current snapshot.
func (s *Session) Recompute() *fleet.Report {
	return fleet.BuildReport(s.Snapshot())
}
