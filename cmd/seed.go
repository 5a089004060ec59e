package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the store with the sample fleet",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()

		if err := svc.Seed(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("seeded sample fleet: 8 units, 5 routes, 14 schedules")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
