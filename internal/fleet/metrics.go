package fleet

import "math"

// Valuation constants are product decisions, not configuration: a truck
// depreciates linearly from the base value and never appraises below salvage.
const (
	baseResaleValue     = 65000.0
	depreciationPerMile = 0.05
	salvageFloor        = 10000.0
)

// Metrics is the derived per-truck tuple the classifier evaluates.
type Metrics struct {
	Odometer    float64
	CPM         float64
	NetEquity   float64
	RecentMiles float64
}

// computeMetrics fills the derived fields of a record from its merged inputs.
// Zero recent miles is substituted with 1 so a truck with repairs and no
// mileage reports its repair cost as CPM instead of dividing by zero.
func computeMetrics(r *Record) {
	r.EstResale = math.Max(salvageFloor, baseResaleValue-r.Odometer*depreciationPerMile)
	r.NetEquity = r.EstResale - r.PayoffBalance

	miles := r.RecentMiles
	if miles == 0 {
		miles = 1
	}
	r.CPM = r.TotalRepairs / miles
}

// metrics extracts the classifier input tuple from a record.
func (r *Record) metrics() Metrics {
	return Metrics{
		Odometer:    r.Odometer,
		CPM:         r.CPM,
		NetEquity:   r.NetEquity,
		RecentMiles: r.RecentMiles,
	}
}
