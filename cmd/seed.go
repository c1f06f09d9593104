package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/ledger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the ledger with synthetic history",
	Long: "Replace every transaction with a month of synthetic history generated from\n" +
		"an annual income and monthly expenses, or with the demonstration week (--demo).",
	RunE: runSeed,
}

var (
	seedIncome   float64
	seedExpenses float64
	seedValue    int64
	seedDemo     bool
)

func init() {
	seedCmd.Flags().Float64Var(&seedIncome, "income", 360000, "Annual income")
	seedCmd.Flags().Float64Var(&seedExpenses, "expenses", 15000, "Monthly expenses")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (default: current time)")
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "Load the demonstration week and profile instead")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	day := mustAsOf()

	s, err := updateState(func(s *ledger.State) error {
		if seedDemo {
			s.Transactions = ledger.Demo(day)
			s.Profile = ledger.DemoProfile()
			return nil
		}
		value := seedValue
		if !cmd.Flags().Changed("seed") {
			value = time.Now().UnixNano()
		}
		return s.Seed(seedIncome, seedExpenses, day, rand.New(rand.NewSource(value)))
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Ledger replaced with %s transactions ending %s\n",
		formatNumber(int64(len(s.Transactions))), day.Key())
	fmt.Printf("  Wallet balance: %s\n", cli.FormatCurrency(s.Profile.CurrentBalance))
	return nil
}
