package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/ledger"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw AMOUNT",
	Short: "Instant withdrawal from the wallet to the bank",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithdraw,
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
}

func runWithdraw(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	s, err := updateState(func(s *ledger.State) error {
		_, err := s.Withdraw(amount, mustAsOf())
		return err
	})
	if errors.Is(err, ledger.ErrInsufficientFunds) {
		return fmt.Errorf("cannot withdraw %s: insufficient funds", cli.FormatCurrency(amount))
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Withdrew %s to %s\n", cli.FormatCurrency(amount), bankLabel(s))
	fmt.Printf("  Wallet balance: %s\n", cli.FormatCurrency(s.Profile.CurrentBalance))
	return nil
}

func bankLabel(s *ledger.State) string {
	if b := s.Profile.BankDetails.BankName; b != "" {
		return b
	}
	return "your bank account"
}
