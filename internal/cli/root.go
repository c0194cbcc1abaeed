// Package cli is the terminal surface of the budgeting client: cobra
// commands over the item, schedule, and balance services, plus the
// rendered month view.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ledgercal/ledgercal/internal/config"
	"github.com/spf13/cobra"
)

var flagConfigPath string

var rootCmd = &cobra.Command{
	Use:   "ledgercal",
	Short: "Calendar-centric budget projection",
	Long: "Plan recurring income and expenses on a monthly calendar and see\n" +
		"the projected running balance for every day of the month.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonth(cmd, args)
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "ledgercal.yaml", "Path to the configuration file")
}

// loadDependencies is the shared wiring path used by all commands.
func loadDependencies() (*Dependencies, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return BuildDependencies(cfg)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
