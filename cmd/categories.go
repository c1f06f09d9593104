package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/pipeline"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Spend breakdown by category",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}
	if len(s.Transactions) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	since, until := window()
	cats := pipeline.AggregateCategories(s.Transactions, since, until)
	if len(cats) == 0 {
		fmt.Println("\n  No transactions in the selected range.")
		return nil
	}

	// Previous period for comparison
	prevUntil := since.AddDays(-1)
	prevSince := prevUntil.AddDays(-(flagDays - 1))
	prev := make(map[string]float64)
	for _, c := range pipeline.AggregateCategories(s.Transactions, prevSince, prevUntil) {
		prev[c.Category] = c.Expenses
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CATEGORIES  Last %dd", flagDays)))
	fmt.Println()

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			c.Category,
			cli.FormatNumber(int64(c.Transactions)),
			cli.FormatCurrency(c.Income),
			cli.FormatCurrency(c.Expenses),
			cli.FormatPct(c.SharePercent),
			cli.FormatDelta(c.Expenses, prev[c.Category]),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Txns", "Income", "Spent", "Share", "vs Prev"},
		Rows:    rows,
	}))

	maxSpend := cats[0].Expenses
	if maxSpend > 0 {
		fmt.Println()
		for _, c := range cats {
			if c.Expenses <= 0 {
				continue
			}
			fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-16s", truncate(c.Category, 16)), c.Expenses, maxSpend, 30))
		}
		fmt.Println()
	}

	return nil
}
