// Package store persists decision-report runs for later audit. Persistence
// is an optional side channel: the decision engine never reads it back.
package store

import (
	"context"
	"time"

	"github.com/sells-group/fleet-cli/internal/fleet"
)

// Run is one persisted engine invocation.
type Run struct {
	ID        string        `json:"id"`
	Trucks    int           `json:"trucks"`
	Summary   fleet.Summary `json:"summary"`
	Report    *fleet.Report `json:"report,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store defines the run-history persistence interface.
type Store interface {
	SaveRun(ctx context.Context, report *fleet.Report) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
