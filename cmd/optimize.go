package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var targetDate string

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run one planning pass for a target date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().AddDate(0, 0, 1)
		if targetDate != "" {
			var err error
			date, err = time.Parse("2006-01-02", targetDate)
			if err != nil {
				return fmt.Errorf("parse date: %w", err)
			}
		}

		svc, err := newService()
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()

		run, err := svc.PlanDate(cmd.Context(), date)
		if err != nil {
			return err
		}
		m := run.Metrics
		fmt.Printf("run %s for %s\n", run.ID, date.Format("2006-01-02"))
		fmt.Printf("  schedules : %d (%d assigned, %d unassigned)\n",
			m.TotalSchedules, m.AssignedCount, m.TotalSchedules-m.AssignedCount)
		fmt.Printf("  coverage  : %.1f%%   utilization: %.1f%%\n", m.CoverageRate, m.UtilizationRate)
		fmt.Printf("  avg score : %.2f   fuel cost: %.0f   distance: %.1f km\n",
			m.AverageScore, m.TotalFuelCost, m.TotalDistanceKm)
		return nil
	},
}

func init() {
	optimizeCmd.Flags().StringVar(&targetDate, "date", "", "target date (YYYY-MM-DD), defaults to tomorrow")
	rootCmd.AddCommand(optimizeCmd)
}
