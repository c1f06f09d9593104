// Package cmd implements the gigfin CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/config"
	"github.com/theirongolddev/gigfin/internal/pipeline"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", dataDir())
	fmt.Printf("    Database:       %s\n", pipeline.DBPath(dataDir()))
	fmt.Printf("    Default days:   %d\n", cfg.General.DefaultDays)
	fmt.Printf("    Log level:      %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Leaks]")
	fmt.Printf("    Placeholder fee: %v\n", cfg.Leaks.Placeholder)
	fmt.Println()

	fmt.Println("  [Predictor]")
	fmt.Printf("    Base URL: %s\n", config.PredictorURL(cfg))
	fmt.Printf("    Timeout:  %s\n", config.PredictorTimeout(cfg))
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:          %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval:    %s\n", config.DaemonInterval(cfg))
	fmt.Printf("    History schedule: %s\n", cfg.Daemon.HistorySchedule)
	fmt.Println()

	fmt.Println("  [Defaults]")
	fmt.Printf("    Daily target: %.0f\n", cfg.Defaults.DailyTarget)
	fmt.Printf("    Fuel price:   %.2f\n", cfg.Defaults.FuelPrice)
	fmt.Println()

	fmt.Println("  Run `gigfin setup` to reconfigure.")
	return nil
}
