package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/ledger"
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Show or change the fuel price and daily income target",
	RunE:  runTune,
}

var (
	tuneFuelPrice   float64
	tuneDailyTarget float64
)

func init() {
	tuneCmd.Flags().Float64Var(&tuneFuelPrice, "fuel-price", 0, "Fuel price per litre")
	tuneCmd.Flags().Float64Var(&tuneDailyTarget, "daily-target", 0, "Daily income target")
	rootCmd.AddCommand(tuneCmd)
}

func runTune(cmd *cobra.Command, _ []string) error {
	var patch ledger.ConfigPatch
	if cmd.Flags().Changed("fuel-price") {
		patch.FuelPrice = &tuneFuelPrice
	}
	if cmd.Flags().Changed("daily-target") {
		patch.DailyTarget = &tuneDailyTarget
	}

	var (
		s   *ledger.State
		err error
	)
	if patch.FuelPrice == nil && patch.DailyTarget == nil {
		s, err = loadState()
	} else {
		s, err = updateState(func(s *ledger.State) error { return s.UpdateConfig(patch) })
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SETTINGS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Fuel Price", cli.FormatCurrency(s.Config.FuelPrice)},
			{"Daily Target", cli.FormatCurrency(s.Config.DailyTarget)},
		},
	}))
	return nil
}
