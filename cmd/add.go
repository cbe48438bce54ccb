package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/export"
	"github.com/sells-group/fleet-cli/internal/loader"
	"github.com/sells-group/fleet-cli/internal/render"
	"github.com/sells-group/fleet-cli/internal/session"
)

var (
	addTruck session.Truck
	addOut   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a truck to the finance roster and recompute",
	Long:  "Appends a truck row to the loaded finance roster, reruns the decision engine, prints the updated report, and writes the updated roster.",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loader.Load(cmd.Context(), cfg.Sources)
		if err != nil {
			return err
		}

		sess := session.New(snap)
		if err := sess.AddTruck(addTruck); err != nil {
			return err
		}

		rep := sess.Recompute()
		logDiagnostics(rep)

		if rep.Empty() {
			fmt.Fprintln(os.Stderr, render.NoDataMessage)
		} else {
			render.Cards(os.Stdout, rep.Records)
		}

		if err := export.WriteFinanceXLSX(sess.Finance(), addOut); err != nil {
			return err
		}
		zap.L().Info("updated roster written",
			zap.String("path", addOut),
			zap.Int("version", sess.Version()),
		)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addTruck.UnitID, "unit", "", "unit identifier (required)")
	addCmd.Flags().StringVar(&addTruck.Make, "make", "", "truck make")
	addCmd.Flags().StringVar(&addTruck.Model, "model", "", "truck model")
	addCmd.Flags().StringVar(&addTruck.Year, "year", "", "model year")
	addCmd.Flags().Float64Var(&addTruck.MonthlyPayment, "payment", 0, "monthly payment")
	addCmd.Flags().StringVar(&addOut, "out", "truck-finance_updated.xlsx", "path for the updated finance roster")
	_ = addCmd.MarkFlagRequired("unit")
	rootCmd.AddCommand(addCmd)
}
