package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/pipeline"
	"github.com/theirongolddev/gigfin/internal/score"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "FlowForward runway and savings projection",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	f := score.Forecast(pipeline.Totals(s.Transactions), s.Profile)

	runway := cli.FormatRunway(f.RunwayDays)
	switch {
	case f.RunwayDays < 7:
		runway = cli.Bad(runway)
	case f.RunwayDays < 30:
		runway = cli.Warn(runway)
	default:
		runway = cli.Good(runway)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FLOWFORWARD"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Projection", "Value"},
		Rows: [][]string{
			{"Wallet Balance", cli.FormatCurrency(s.Profile.CurrentBalance)},
			{"Daily Spend", cli.FormatCurrency(f.DailyExpense)},
			{"Runway", runway},
			{"---"},
			{"Net Cashflow", cli.FormatSigned(f.NetCashflow)},
			{"Next 30 Days", cli.FormatSigned(float64(f.ProjectedCashflow))},
			{"---"},
			{"Savings Goal", cli.FormatCurrency(s.Profile.SavingsGoal)},
			{"Still To Save", cli.FormatCurrency(f.RemainingGoal)},
			{"Save Per Day (90d)", cli.FormatCurrency(float64(f.DailySaveTarget))},
		},
	}))

	return nil
}
