package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/ledger"
	"github.com/theirongolddev/gigfin/internal/model"
)

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Micro-loans",
	RunE:  runLoanList,
}

var loanApplyCmd = &cobra.Command{
	Use:   "apply AMOUNT",
	Short: "Apply for a micro-loan, disbursed into the wallet",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoanApply,
}

var loanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loans",
	RunE:  runLoanList,
}

func init() {
	loanCmd.AddCommand(loanApplyCmd)
	loanCmd.AddCommand(loanListCmd)
	rootCmd.AddCommand(loanCmd)
}

func runLoanApply(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	var loan model.Loan
	s, err := updateState(func(s *ledger.State) error {
		loan, err = s.ApplyForLoan(amount, mustAsOf())
		return err
	})
	if errors.Is(err, ledger.ErrLoanRejected) {
		return fmt.Errorf("loan rejected: insufficient balance history")
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Loan of %s approved and disbursed\n", cli.FormatCurrency(loan.TotalAmount))
	fmt.Printf("  %d installments of %s, first due %s\n",
		ledger.LoanInstallments, cli.FormatCurrency(loan.InstallmentAmount), loan.NextDueDate.Key())
	fmt.Printf("  Wallet balance: %s\n", cli.FormatCurrency(s.Profile.CurrentBalance))
	return nil
}

func runLoanList(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("LOANS"))
	fmt.Println()

	if len(s.Loans) == 0 {
		fmt.Println("  No loans.")
		return nil
	}

	rows := make([][]string, 0, len(s.Loans)+2)
	for _, l := range s.Loans {
		rows = append(rows, []string{
			truncate(l.ID, 8),
			string(l.Status),
			cli.FormatCurrency(l.TotalAmount),
			cli.FormatCurrency(l.RemainingAmount),
			cli.FormatCurrency(l.InstallmentAmount),
			l.NextDueDate.Key(),
		})
	}
	rows = append(rows, []string{"---"}, []string{"Outstanding", "", "", cli.FormatCurrency(s.OutstandingDebt()), "", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Loan", "Status", "Total", "Remaining", "Installment", "Next Due"},
		Rows:    rows,
	}))

	return nil
}
