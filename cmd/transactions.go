package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/pipeline"
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "Transaction list, most recent first",
	RunE:    runTransactions,
}

var (
	txLimit    int
	txType     string
	txCategory string
)

func init() {
	transactionsCmd.Flags().IntVarP(&txLimit, "limit", "l", 20, "Number of transactions to show")
	transactionsCmd.Flags().StringVarP(&txType, "type", "t", "", "Only show income, expense or withdrawal")
	transactionsCmd.Flags().StringVarP(&txCategory, "category", "c", "", "Only show categories containing this text")
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}
	if len(s.Transactions) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	since, until := window()
	txs := pipeline.FilterByTime(s.Transactions, since, until)
	if txType != "" {
		typ := model.TxType(txType)
		if !typ.Valid() {
			return fmt.Errorf("invalid --type %q: want income, expense or withdrawal", txType)
		}
		txs = pipeline.FilterByType(txs, typ)
	}
	if txCategory != "" {
		txs = pipeline.FilterByCategory(txs, txCategory)
	}

	if len(txs) == 0 {
		fmt.Println("\n  No transactions in the selected range.")
		return nil
	}

	total := len(txs)
	if txLimit > 0 && len(txs) > txLimit {
		txs = txs[:txLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRANSACTIONS  Last %dd (showing %d of %d)", flagDays, len(txs), total)))
	fmt.Println()

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		amount := cli.FormatSigned(tx.SignedAmount())
		if tx.Type == model.TypeIncome {
			amount = cli.Good(amount)
		}
		rows = append(rows, []string{
			tx.Date.Key(),
			string(tx.Type),
			truncate(tx.Category, 16),
			truncate(tx.Description, 20),
			amount,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Type", "Category", "Description", "Amount"},
		Rows:    rows,
	}))

	return nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
