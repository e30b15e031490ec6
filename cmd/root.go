// Package cmd contains all Cobra commands for avalanche.
//
// Design decision: the root command establishes the warehouse session
// and launches the TUI directly. Credentials come from the environment
// (or a .env file), not from CLI flags, matching how the hosting
// platform injects secrets.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"avalanche/applog"
	"avalanche/config"
	"avalanche/cortex"
	"avalanche/tui"
	"avalanche/warehouse"
)

var rootCmd = &cobra.Command{
	Use:   "avalanche",
	Short: "Review-sentiment dashboard with a Cortex assistant",
	Long: `avalanche is a terminal dashboard for the REVIEWS_WITH_SENTIMENT table:
  • Mean sentiment per product and a score histogram
  • Product-filtered review table
  • Chat assistant backed by SNOWFLAKE.CORTEX.COMPLETE

Credentials are read from SNOWFLAKE_* environment variables, or from an
ambient session token when running inside the platform's runtime.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	provider := warehouse.NewProvider(cfg.Warehouse)
	applog.Info("session strategy: %s", provider.Name())

	session, err := provider.Open(ctx)
	if err != nil {
		applog.Error("session open failed: %v", err)
		return fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	completion, err := cortex.NewProvider(cfg.Chat, session)
	if err != nil {
		return err
	}

	applog.Info("starting TUI, chat provider=%s", completion.Name())
	defer applog.Close()
	return tui.Start(session, completion)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
