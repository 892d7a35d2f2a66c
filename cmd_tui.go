package main

import (
	"os"
	"os/signal"

	"github.com/aishield/shield-backend/internal/config"
	"github.com/aishield/shield-backend/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the dashboard in the terminal",
	Long: `Runs an in-process dashboard and renders it with a live terminal view.
tab cycles the time range, a activates and i ignores an autonomous intervention.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// the alternate screen owns stdout, so narrative warnings are dropped
	d, err := buildDashboard(ctx, cfg, nil, nil, zap.NewNop())
	if err != nil {
		return err
	}
	d.Start(ctx)
	defer d.Stop()

	return tui.Run(ctx, d)
}
