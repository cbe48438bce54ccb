package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/loader"
	"github.com/sells-group/fleet-cli/internal/render"
)

var (
	reportFilter string
	reportFormat string
	reportSave   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the fleet decision report",
	Long:  "Loads the source spreadsheets, reconciles them per truck, and prints KEEP / SELL / INSPECT recommendations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		action, ok := fleet.ParseAction(reportFilter)
		if !ok {
			return eris.Errorf("invalid --filter %q (expected KEEP, SELL, or INSPECT)", reportFilter)
		}

		snap, err := loader.Load(ctx, cfg.Sources)
		if err != nil {
			return err
		}

		rep := fleet.BuildReport(snap)
		logDiagnostics(rep)

		if rep.Empty() {
			fmt.Fprintln(os.Stderr, render.NoDataMessage)
			return nil
		}

		if reportSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return err
			}
			run, err := st.SaveRun(ctx, rep)
			if err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID), zap.Int("trucks", run.Trucks))
		}

		records := fleet.FilterByAction(rep.Records, action)
		return renderRecords(os.Stdout, records, reportFormat)
	},
}

// renderRecords writes the record set in the requested format, followed by
// the summary line. The summary covers exactly the records shown: a filtered
// view gets a filtered roll-up.
func renderRecords(w io.Writer, records []fleet.Record, format string) error {
	switch format {
	case "cards":
		render.Cards(w, records)
	case "table":
		render.Table(w, records)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return eris.Wrap(err, "encode records")
		}
	default:
		return eris.Errorf("invalid --format %q (expected cards, table, or json)", format)
	}

	render.Summary(w, fleet.Summarize(records))
	return nil
}

// logDiagnostics surfaces every heuristic that resolved nothing, since the
// merge silently zero-fills those metrics.
func logDiagnostics(rep *fleet.Report) {
	for _, d := range rep.Diagnostics {
		if d.Resolved {
			zap.L().Debug("column resolved",
				zap.String("source", d.Source),
				zap.String("hint", d.Hint),
				zap.String("column", d.Column),
			)
			continue
		}
		zap.L().Warn("column not resolved, metrics default to zero",
			zap.String("source", d.Source),
			zap.String("hint", d.Hint),
		)
	}
}

func init() {
	reportCmd.Flags().StringVar(&reportFilter, "filter", "", "only show trucks with this action (KEEP, SELL, INSPECT)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "cards", "output format (cards, table, json)")
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "persist this run to the history store")
	rootCmd.AddCommand(reportCmd)
}
