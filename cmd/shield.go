package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/pipeline"
	"github.com/theirongolddev/gigfin/internal/score"
)

var shieldCmd = &cobra.Command{
	Use:   "shield",
	Short: "LeakShield expense ratio and liquidity check",
	RunE:  runShield,
}

func init() {
	rootCmd.AddCommand(shieldCmd)
}

func runShield(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	r := score.Shield(pipeline.Totals(s.Transactions), s.Profile)

	ratio := cli.FormatPct(r.ExpenseRatio)
	if r.ExpenseHigh {
		ratio = cli.Warn(ratio)
	} else {
		ratio = cli.Good(ratio)
	}
	liquidity := cli.FormatMonths(r.LiquidityBuffer, r.LiquidityKnown)
	if r.LiquidityLow {
		liquidity = cli.Bad(liquidity)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LEAKSHIELD"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value", "Limit"},
		Rows: [][]string{
			{"Total Income", cli.FormatCurrency(r.TotalIncome), ""},
			{"Total Expenses", cli.FormatCurrency(r.TotalExpenses), ""},
			{"Expense Ratio", ratio, fmt.Sprintf("%.0f%%", score.ExpenseRatioLimit)},
			{"Liquidity Buffer", liquidity, fmt.Sprintf("%.0f month", score.LiquidityFloor)},
		},
	}))
	fmt.Println()
	fmt.Print(cli.RenderAlert(r.Alert.Severity, r.Alert.Title, r.Alert.Message))
	for _, in := range r.Insights {
		fmt.Printf("  %s %s\n", cli.Muted("-"), in)
	}
	fmt.Println()

	return nil
}
