package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/transitops/fleetassign/app"
	"github.com/transitops/fleetassign/config"
	"github.com/transitops/fleetassign/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fleetassign",
	Short: "Transit fleet assignment service",
	Long: `fleetassign assigns transport units to timetabled route departures.
Without a subcommand it runs the long-lived planner: the next day is
planned on every interval tick and metrics are exposed for Prometheus.`,
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
