package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past planning runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()

		runs, err := svc.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("no planning runs recorded")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  planned %s  coverage %.1f%%  assigned %d/%d  avg score %.2f\n",
				r.ID, r.TargetDate.Format("2006-01-02"),
				r.PlannedAt.Format("2006-01-02 15:04:05"),
				r.Metrics.CoverageRate, r.Metrics.AssignedCount,
				r.Metrics.TotalSchedules, r.Metrics.AverageScore)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
