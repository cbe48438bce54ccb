package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/export"
	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/loader"
	"github.com/sells-group/fleet-cli/internal/render"
)

var (
	exportOut        string
	exportXLSX       bool
	exportFinanceOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the decision report to CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loader.Load(cmd.Context(), cfg.Sources)
		if err != nil {
			return err
		}

		rep := fleet.BuildReport(snap)
		logDiagnostics(rep)

		if rep.Empty() {
			fmt.Fprintln(os.Stderr, render.NoDataMessage)
			return nil
		}

		if exportXLSX {
			if err := export.WriteDecisionsXLSX(rep.Records, exportOut); err != nil {
				return err
			}
		} else {
			if err := export.WriteDecisionsCSV(rep.Records, exportOut); err != nil {
				return err
			}
		}
		zap.L().Info("decisions exported", zap.String("path", exportOut), zap.Int("trucks", len(rep.Records)))

		if exportFinanceOut != "" {
			if err := export.WriteFinanceXLSX(snap.Finance, exportFinanceOut); err != nil {
				return err
			}
			zap.L().Info("finance roster exported", zap.String("path", exportFinanceOut))
		}

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "truck_decisions.csv", "output path for the decision report")
	exportCmd.Flags().BoolVar(&exportXLSX, "xlsx", false, "write XLSX instead of CSV")
	exportCmd.Flags().StringVar(&exportFinanceOut, "finance-out", "", "also write the finance roster to this XLSX path")
	rootCmd.AddCommand(exportCmd)
}
