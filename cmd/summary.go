package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/pipeline"
	"github.com/theirongolddev/gigfin/internal/score"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dashboard overview of every score",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	day := mustAsOf()
	d := pipeline.BuildDashboard(s, day, leakOptions())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GIGFIN  %s  as of %s", s.Profile.Name, day.Key())))
	fmt.Println()

	if len(s.Transactions) == 0 {
		fmt.Println("  No transactions yet.")
		fmt.Println("  Add one with `gigfin add`, import statements with `gigfin import`,")
		fmt.Println("  or try `gigfin seed --demo`.")
		fmt.Println()
	}

	rows := [][]string{
		{"Wallet Balance", cli.FormatCurrency(d.Balance)},
		{"Net Flow", cli.FormatSigned(d.NetFlow)},
		{"Income", cli.FormatCurrency(d.Totals.Income)},
		{"Expenses", cli.FormatCurrency(d.Totals.Expenses)},
		{"Withdrawals", cli.FormatCurrency(d.Totals.Withdrawals)},
		{"---"},
		{"Karma Score", fmt.Sprintf("%d  %s", d.Karma.Score, score.KarmaLabel(d.Karma.Score))},
		{"Expense Ratio", cli.FormatPct(d.Shield.ExpenseRatio)},
		{"Liquidity", cli.FormatMonths(d.Shield.LiquidityBuffer, d.Shield.LiquidityKnown)},
		{"Runway", cli.FormatRunway(d.Forecast.RunwayDays)},
		{"Survival Score", fmt.Sprintf("%d/100", d.Survival)},
		{"---"},
		{"Gig Credit Score", fmt.Sprintf("%d", d.Credit.Score)},
		{"Leaks Flagged", fmt.Sprintf("%d", len(d.Leaks))},
		{"App Streak", fmt.Sprintf("%d days", s.Profile.AppStreak)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Print(cli.RenderAlert(d.Shield.Alert.Severity, d.Shield.Alert.Title, d.Shield.Alert.Message))

	return nil
}
