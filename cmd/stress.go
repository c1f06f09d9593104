package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/score"
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Survival score under fuel price and order volume shocks",
	RunE:  runStress,
}

var (
	stressFuel   float64
	stressVolume float64
)

func init() {
	stressCmd.Flags().Float64Var(&stressFuel, "fuel-price", 0, "Fuel price per litre (default from settings)")
	stressCmd.Flags().Float64Var(&stressVolume, "volume", 100, "Order volume as a percent of normal")
	rootCmd.AddCommand(stressCmd)
}

func runStress(cmd *cobra.Command, _ []string) error {
	fuel := stressFuel
	if !cmd.Flags().Changed("fuel-price") {
		s, err := loadState()
		if err != nil {
			return err
		}
		fuel = s.Config.FuelPrice
	}
	if fuel < 0 || stressVolume < 0 {
		return fmt.Errorf("fuel price and volume must be non-negative")
	}

	survival := score.SurvivalScore(fuel, stressVolume)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("STRESS TEST  fuel %s  volume %.0f%%", cli.FormatCurrency(fuel), stressVolume)))
	fmt.Println()
	fmt.Printf("  %s\n\n", cli.RenderGauge(survival, 30))

	// Sweep fuel from 90 to 150 at the chosen volume.
	var sweep []float64
	rows := [][]string{}
	for price := 90.0; price <= 150; price += 10 {
		v := score.SurvivalScore(price, stressVolume)
		sweep = append(sweep, float64(v))
		rows = append(rows, []string{cli.FormatCurrency(price), fmt.Sprintf("%d", v)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Fuel Sweep",
		Headers: []string{"Fuel", "Survival"},
		Rows:    rows,
	}))
	fmt.Printf("  %s\n\n", cli.RenderSparkline(sweep))

	return nil
}
