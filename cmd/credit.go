package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gigfin/internal/cli"
	"github.com/theirongolddev/gigfin/internal/score"
)

var creditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Gig credit score and micro-loan eligibility",
	RunE:  runCredit,
}

func init() {
	rootCmd.AddCommand(creditCmd)
}

func runCredit(_ *cobra.Command, _ []string) error {
	s, err := loadState()
	if err != nil {
		return err
	}

	g := score.Credit(s.Profile.GigCreditScore)

	eligible := cli.Bad("Not eligible")
	if g.Eligible {
		eligible = cli.Good("Eligible")
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GIG CREDIT"))
	fmt.Println()
	fmt.Printf("  300 %s 850\n\n", cli.RenderProgressBar(int(g.Percent), 100, 30))
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Credit Score", fmt.Sprintf("%d", g.Score)},
			{"Micro-loan", eligible},
			{"Approval Probability", cli.FormatPercent(s.Profile.ApprovalProbability)},
			{"Max Loan Amount", cli.FormatCurrency(s.Profile.MaxLoanAmount)},
			{"Outstanding Debt", cli.FormatCurrency(s.OutstandingDebt())},
		},
	}))
	fmt.Println(cli.Muted("  Refresh these figures with `gigfin predict --apply`."))
	fmt.Println()

	return nil
}
