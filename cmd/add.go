package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/model"
	"github.com/theirongolddev/gigfin/internal/source"
)

var addCmd = &cobra.Command{
	Use:   "add TYPE AMOUNT",
	Short: "Record an income, expense or withdrawal",
	Long: "Record a transaction and move the wallet balance.\n" +
		"TYPE is income, expense or withdrawal.",
	Example: "  gigfin add income 1200 --category Uber\n  gigfin add expense 300 -c fuel --desc Petrol",
	Args:    cobra.ExactArgs(2),
	RunE:    runAdd,
}

var (
	addCategory string
	addDate     string
	addDesc     string
)

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category, e.g. Uber, Fuel, Food")
	addCmd.Flags().StringVar(&addDate, "date", "", "Transaction date YYYY-MM-DD (default --as-of)")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Description")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, args []string) error {
	typ := model.TxType(strings.ToLower(args[0]))
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	day := mustAsOf()
	if addDate != "" {
		day, err = model.ParseDate(addDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", addDate, err)
		}
	}

	var added model.Transaction
	s, err := updateState(func(s *ledger.State) error {
		added, err = s.AddTransaction(model.Transaction{
			Type:        typ,
			Amount:      amount,
			Category:    source.NormalizeCategory(addCategory),
			Date:        day,
			Description: addDesc,
		})
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Recorded %s %s (%s) on %s\n", added.Type, cli.FormatCurrency(added.Amount), added.Category, added.Date.Key())
	fmt.Printf("  Wallet balance: %s\n", cli.FormatCurrency(s.Profile.CurrentBalance))
	return nil
}
