package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/pipeline"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily income and spend table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}
	if len(s.Transactions) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	since, until := window()
	days := pipeline.AggregateDays(s.Transactions, since, until)

	if len(days) == 0 {
		fmt.Println("\n  No data for the selected period.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY  Last %dd", flagDays)))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	income := make([]float64, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			d.Date.Key(),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.FormatNumber(int64(d.Transactions)),
			cli.FormatCurrency(d.Income),
			cli.FormatCurrency(d.Expenses + d.Withdrawals),
			cli.FormatSigned(d.Net()),
		})
		income = append(income, d.Income)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Txns", "Income", "Out", "Net"},
		Rows:    rows,
	}))

	// days are newest first; the sparkline reads left to right in time
	for i, j := 0, len(income)-1; i < j; i, j = i+1, j-1 {
		income[i], income[j] = income[j], income[i]
	}
	fmt.Printf("\n  Income %s\n\n", cli.RenderSparkline(income))

	return nil
}
